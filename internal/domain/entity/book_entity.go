package entity

import "github.com/RoyceAzure/lab/bookstore/internal/domain/model"

// BookEntity 年齡分級判斷用的最小快照
// 目錄列表與購物車驗證共用同一個判斷，不能各寫一份
type BookEntity struct {
	BookID  uint
	IsAdult bool
}

func FromBook(book *model.Book) BookEntity {
	return BookEntity{
		BookID:  book.BookID,
		IsAdult: book.IsAdult,
	}
}

// AllowedForAge 非成人書一律允許，成人書需年齡大於18
func (b BookEntity) AllowedForAge(age int) bool {
	return !b.IsAdult || age > 18
}

// FilterAllowed 回傳該年齡可見的books子集
func FilterAllowed(books []model.Book, age int) []model.Book {
	allowed := make([]model.Book, 0, len(books))
	for _, book := range books {
		if FromBook(&book).AllowedForAge(age) {
			allowed = append(allowed, book)
		}
	}
	return allowed
}
