package middlewares

import (
	"net/http"

	httperrors "github.com/dropDatabas3/authgate/internal/http/errors"
	"github.com/dropDatabas3/authgate/internal/observability/logger"
	"go.uber.org/zap"
)

// Recover converts panics into 500 responses instead of taking down the
// connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.From(r.Context()).Error("panic recovered",
					zap.Any("panic", rec),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
				)
				httperrors.WriteError(w, httperrors.ErrInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
