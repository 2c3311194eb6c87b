package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func SuccessJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{Data: data})
}

func CreatedJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(Response{Data: data})
}

func ErrorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: message})
}

// writeServiceError 把service層錯誤轉成HTTP狀態碼
// 沒對到的一律500，原始錯誤只進log不出外
func writeServiceError(w http.ResponseWriter, err error) {
	var stockErr *service.StockExceededError
	switch {
	case errors.As(err, &stockErr):
		ErrorJSON(w, http.StatusBadRequest, stockErr.Error())
	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		ErrorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAgeRestricted):
		ErrorJSON(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrBookUnavailable),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity):
		ErrorJSON(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("unexpected service error")
		ErrorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
