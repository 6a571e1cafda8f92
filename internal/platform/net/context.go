// Package net holds transport-neutral request helpers shared by the HTTP facade and the MCP server
package net

import (
	"context"

	"domamarket/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores reqID where both chi and the logger can find it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the request id on ctx, or ""
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return logger.RequestID(ctx)
}
