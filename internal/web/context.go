package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/petition/internal/core"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx for the
// submission log entries.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // already resolved by TrustedRealIP
	ctx = core.ContextWithIPAddress(ctx, ip)
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	return ctx
}
