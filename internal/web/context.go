package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/barista/internal/core"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx for import logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, r.RemoteAddr) // already resolved by TrustedRealIP
	ctx = core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	return ctx
}
