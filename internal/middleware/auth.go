package middleware

import (
	"net/http"
	"strings"

	"github.com/adk-labs/platform/internal/api/write"
	"github.com/adk-labs/platform/internal/apierrors"
	"github.com/adk-labs/platform/internal/log"
	adkcontext "github.com/adk-labs/platform/utils/context"
	"github.com/adk-labs/platform/utils/jwtauth"
)

const bearerPrefix = "Bearer "

// Authentication verifies the bearer token and stores its claims in the
// context. A token whose tenant claim differs from the tenant already
// resolved from the request is rejected outright: a credential issued
// under one tenant never grants access to another.
func Authentication(signer *jwtauth.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, found := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !found || token == "" {
				write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())

				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				log.Warn(ctx, "Rejected invalid access token", log.ErrorAttr(err))
				write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())

				return
			}

			tenant, err := adkcontext.ExtractTenantID(ctx)
			if err != nil || claims.TenantID != tenant {
				log.Warn(ctx, "Rejected token for mismatched tenant")
				write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())

				return
			}

			ctx = adkcontext.InjectClaims(ctx, &adkcontext.Claims{
				TenantID: claims.TenantID,
				Subject:  claims.Subject,
				Email:    claims.Email,
				Role:     claims.Role,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards an endpoint behind a role claim.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, err := adkcontext.ExtractClaims(ctx)
			if err != nil {
				write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())

				return
			}

			if claims.Role != role {
				write.ErrorResponse(ctx, w, &apierrors.APIError{
					Code:    "FORBIDDEN",
					Message: "Insufficient permissions",
					Status:  http.StatusForbidden,
				})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
