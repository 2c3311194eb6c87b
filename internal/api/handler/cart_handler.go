package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

func requesterOrAbort(w http.ResponseWriter, r *http.Request) *service.Requester {
	requester := util.GetRequesterFromContext(r.Context())
	if requester == nil {
		ErrorJSON(w, http.StatusUnauthorized, "missing identity")
		return nil
	}
	return requester
}

func parseBookID(r *http.Request) (uint, bool) {
	bookID, err := strconv.ParseUint(chi.URLParam(r, "bookID"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(bookID), true
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), *requester)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, dto.ConvertCartToResponse(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	var addItemDTO dto.AddItemDTO
	if err := json.NewDecoder(r.Body).Decode(&addItemDTO); err != nil {
		ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, created, err := h.cartService.AddItem(r.Context(), *requester, addItemDTO.BookID, addItemDTO.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := dto.AddItemResponse{
		BookID:   item.BookID,
		Quantity: item.Quantity,
		Created:  created,
	}
	if created {
		CreatedJSON(w, response)
		return
	}
	SuccessJSON(w, response)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	bookID, ok := parseBookID(r)
	if !ok {
		ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	var updateDTO dto.UpdateQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cartService.UpdateQuantity(r.Context(), *requester, bookID, updateDTO.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// 數量0等同移除，沒有item可以回
	if item == nil {
		SuccessJSON(w, dto.AddItemResponse{BookID: bookID, Quantity: 0})
		return
	}
	SuccessJSON(w, dto.AddItemResponse{BookID: item.BookID, Quantity: item.Quantity})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	bookID, ok := parseBookID(r)
	if !ok {
		ErrorJSON(w, http.StatusBadRequest, "invalid book id")
		return
	}

	removed, err := h.cartService.RemoveItem(r.Context(), *requester, bookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, map[string]bool{"removed": removed})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	deleted, err := h.cartService.ClearCart(r.Context(), *requester)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, map[string]int64{"deleted": deleted})
}

func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	summary, err := h.cartService.GetCartSummary(r.Context(), *requester)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, summary)
}
