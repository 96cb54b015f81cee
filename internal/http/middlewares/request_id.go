// Package middlewares holds the gateway's HTTP middleware chain.
package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/authgate/internal/observability/logger"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns each request an id (honoring an inbound X-Request-Id)
// and injects a request-scoped logger into the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		log := logger.L().With(logger.RequestID(id))
		ctx := logger.ToContext(r.Context(), log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
