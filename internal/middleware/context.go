package middleware

import (
	"net/http"

	adkcontext "github.com/adk-labs/platform/utils/context"
)

// RequestIDHeader carries the request id back to the caller so error
// reports can be matched to log lines.
const RequestIDHeader = "X-Request-ID"

// InjectRequestID stamps every request with a fresh id, exposed both on
// the context and on the response.
func InjectRequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := adkcontext.InjectRequestID(r.Context())

			if id, err := adkcontext.GetRequestID(ctx); err == nil {
				w.Header().Set(RequestIDHeader, id)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
