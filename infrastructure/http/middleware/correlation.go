package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/franquianet/portal/infrastructure/service/logger"
)

const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationIDMiddleware is CorrelationID on the default header.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return CorrelationID(CorrelationIDHeader)(next)
}

// CorrelationID ensures every request/response carries a correlation ID in
// header and exposes it, with the client IP, to the logger through the context.
func CorrelationID(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = CorrelationIDHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := r.Header.Get(header)
			if cid == "" {
				cid = uuid.NewString()
			}
			w.Header().Set(header, cid)

			ctx := logger.WithCorrelationID(r.Context(), cid)
			ctx = logger.WithClientIP(ctx, ClientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
