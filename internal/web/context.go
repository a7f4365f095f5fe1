package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/ticketdesk/internal/core"
)

// WithRequestMetadata adds IP and User-Agent to context for audit logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	// RemoteAddr was already rewritten by TrustedRealIP.
	return core.ContextWithClient(ctx, r.RemoteAddr, r.Header.Get("User-Agent"))
}
