package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

// IdentityMiddleware 讀取gateway驗證完帶入的身份headers
// 這層不做認證，缺headers直接401
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseUint(r.Header.Get(constants.HeaderUserID), 10, 32)
		if err != nil || userID == 0 {
			unauthorized(w, "missing or invalid "+constants.HeaderUserID)
			return
		}

		age, err := strconv.Atoi(r.Header.Get(constants.HeaderUserAge))
		if err != nil || age < 0 {
			unauthorized(w, "missing or invalid "+constants.HeaderUserAge)
			return
		}

		requester := service.Requester{
			UserID: uint(userID),
			Age:    age,
		}
		ctx := context.WithValue(r.Context(), constants.RequesterKey, requester)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
