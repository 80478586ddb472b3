package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/adk-labs/platform/internal/api/write"
	"github.com/adk-labs/platform/internal/apierrors"
	"github.com/adk-labs/platform/internal/log"
)

// PanicRecovery turns a handler panic into a logged 500 instead of a
// dropped connection. It sits innermost in the chain so the logging
// middleware still records the response.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			defer func() {
				cause := recover()
				if cause == nil {
					return
				}

				//nolint:err113
				log.Error(ctx, "Recovered from handler panic", fmt.Errorf("%v", cause),
					slog.String("stack", string(debug.Stack())),
				)

				write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())
			}()

			next.ServeHTTP(w, r)
		})
	}
}
