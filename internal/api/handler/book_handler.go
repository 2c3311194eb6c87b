package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/domain/model"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type BookHandler struct {
	bookService service.IBookService
}

func NewBookHandler(bookService service.IBookService) *BookHandler {
	if bookService == nil {
		panic("bookService cannot be nil")
	}
	return &BookHandler{bookService: bookService}
}

func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	page := parseQueryInt(r, "page", constants.DefaultPaging)
	pageSize := parseQueryInt(r, "page_size", constants.DefaultPagingSize)

	books, total, err := h.bookService.ListAllowedBooks(r.Context(), *requester, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, dto.BookListResponse{
		Books:    dto.ConvertBooksToDTOs(books),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	bookID, ok := parseBookID(r)
	if !ok {
		ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.bookService.GetBook(r.Context(), *requester, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, dto.ConvertBookToDTO(book))
}

func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateBookDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if createDTO.Name == "" || createDTO.Slug == "" {
		ErrorJSON(w, http.StatusBadRequest, "name and slug are required")
		return
	}

	book := &model.Book{
		Name:        createDTO.Name,
		Slug:        createDTO.Slug,
		Description: createDTO.Description,
		Price:       createDTO.Price,
		InStock:     createDTO.InStock,
		IsActive:    true,
		IsAdult:     createDTO.IsAdult,
	}
	if err := h.bookService.CreateBook(r.Context(), book); err != nil {
		writeServiceError(w, err)
		return
	}

	CreatedJSON(w, dto.ConvertBookToDTO(book))
}

func (h *BookHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseBookID(r)
	if !ok {
		ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var addStockDTO dto.AddStockDTO
	if err := json.NewDecoder(r.Body).Decode(&addStockDTO); err != nil {
		ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if addStockDTO.Quantity < 1 {
		ErrorJSON(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	stock, err := h.bookService.AddBookStock(r.Context(), bookID, addStockDTO.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, map[string]int{"in_stock": stock})
}

func (h *BookHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseBookID(r)
	if !ok {
		ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var setStockDTO dto.SetStockDTO
	if err := json.NewDecoder(r.Body).Decode(&setStockDTO); err != nil {
		ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if setStockDTO.Stock < 0 {
		ErrorJSON(w, http.StatusBadRequest, "stock cannot be negative")
		return
	}

	if err := h.bookService.SetBookStock(r.Context(), bookID, setStockDTO.Stock); err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, map[string]int{"in_stock": setStockDTO.Stock})
}
