package dto

import (
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/shopspring/decimal"
)

type BookDTO struct {
	BookID      uint            `json:"book_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	InStock     int             `json:"in_stock"`
	IsAdult     bool            `json:"is_adult"`
}

type BookListResponse struct {
	Books    []BookDTO `json:"books"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

type CreateBookDTO struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	InStock     int             `json:"in_stock"`
	IsAdult     bool            `json:"is_adult"`
}

type AddStockDTO struct {
	Quantity int `json:"quantity"`
}

type SetStockDTO struct {
	Stock int `json:"stock"`
}

func ConvertBookToDTO(book *model.Book) BookDTO {
	return BookDTO{
		BookID:      book.BookID,
		Name:        book.Name,
		Slug:        book.Slug,
		Description: book.Description,
		Price:       book.Price,
		InStock:     book.InStock,
		IsAdult:     book.IsAdult,
	}
}

func ConvertBooksToDTOs(books []model.Book) []BookDTO {
	dtos := make([]BookDTO, 0, len(books))
	for _, book := range books {
		dtos = append(dtos, ConvertBookToDTO(&book))
	}
	return dtos
}
