package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// Recoverer turns a panic into a generic JSON 500 and logs the stack
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			ctxzap.Error(r.Context(), "panic while handling request",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
			response.Error(w, http.StatusInternalServerError, response.MessageInternalError)
		}()

		next.ServeHTTP(w, r)
	})
}
