package handler

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	order, err := h.orderService.CreateOrderFromCart(r.Context(), *requester)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	CreatedJSON(w, dto.ConvertOrderToResponse(order))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	orderID := chi.URLParam(r, "orderID")
	order, err := h.orderService.GetOrder(r.Context(), *requester, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	SuccessJSON(w, dto.ConvertOrderToResponse(order))
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requester := requesterOrAbort(w, r)
	if requester == nil {
		return
	}

	page := parseQueryInt(r, "page", constants.DefaultPaging)
	pageSize := parseQueryInt(r, "page_size", constants.DefaultPagingSize)

	orders, total, err := h.orderService.ListOrders(r.Context(), *requester, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := dto.OrderListResponse{
		Orders:   make([]dto.OrderResponse, 0, len(orders)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range orders {
		response.Orders = append(response.Orders, dto.ConvertOrderToResponse(&orders[i]))
	}
	SuccessJSON(w, response)
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
