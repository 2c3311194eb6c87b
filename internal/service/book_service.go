package service

import (
	"context"

	"github.com/RoyceAzure/lab/bookstore/internal/domain/entity"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
)

type IBookService interface {
	// ListAllowedBooks 目錄列表，依年齡過濾成人書籍
	ListAllowedBooks(ctx context.Context, req Requester, page, pageSize int) ([]model.Book, int64, error)
	// GetBook 年齡不符的書視同不存在
	GetBook(ctx context.Context, req Requester, bookID uint) (*model.Book, error)
	CreateBook(ctx context.Context, book *model.Book) error
	AddBookStock(ctx context.Context, bookID uint, quantity int) (int, error)
	SetBookStock(ctx context.Context, bookID uint, stock int) error
}

type BookService struct {
	bookRepo db.IBookRepository
}

func NewBookService(bookRepo db.IBookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

func (s *BookService) ListAllowedBooks(ctx context.Context, req Requester, page, pageSize int) ([]model.Book, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	books, err := s.bookRepo.GetActiveBooks(ctx)
	if err != nil {
		return nil, 0, err
	}

	// 年齡過濾跟加入購物車用同一個判斷，列表看得到的就能加
	allowed := entity.FilterAllowed(books, req.Age)
	total := int64(len(allowed))

	start := (page - 1) * pageSize
	if start >= len(allowed) {
		return []model.Book{}, total, nil
	}
	end := start + pageSize
	if end > len(allowed) {
		end = len(allowed)
	}
	return allowed[start:end], total, nil
}

func (s *BookService) GetBook(ctx context.Context, req Requester, bookID uint) (*model.Book, error) {
	book, err := s.bookRepo.GetActiveBook(ctx, bookID)
	if err != nil {
		if err == db.ErrBookNotFound {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	if !entity.FromBook(book).AllowedForAge(req.Age) {
		return nil, ErrBookNotFound
	}
	return book, nil
}

func (s *BookService) CreateBook(ctx context.Context, book *model.Book) error {
	return s.bookRepo.CreateBook(ctx, book)
}

func (s *BookService) AddBookStock(ctx context.Context, bookID uint, quantity int) (int, error) {
	stock, err := s.bookRepo.AddBookStock(ctx, bookID, quantity)
	if err != nil {
		if err == db.ErrBookNotFound {
			return 0, ErrBookNotFound
		}
		return 0, err
	}
	return stock, nil
}

func (s *BookService) SetBookStock(ctx context.Context, bookID uint, stock int) error {
	if err := s.bookRepo.SetBookStock(ctx, bookID, stock); err != nil {
		if err == db.ErrBookNotFound {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

var _ IBookService = (*BookService)(nil)
