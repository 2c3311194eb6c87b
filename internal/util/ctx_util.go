package util

import (
	"context"

	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

// GetRequesterFromContext 從請求上下文取出身份資訊
// middleware沒放的話回傳nil
func GetRequesterFromContext(ctx context.Context) *service.Requester {
	if v := ctx.Value(constants.RequesterKey); v != nil {
		requester := v.(service.Requester)
		return &requester
	}
	return nil
}

// GetRequestIDFromContext 取出request id，沒有時回傳unknown
func GetRequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		return v.(string)
	}
	return "unknown"
}
