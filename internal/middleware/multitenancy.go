package middleware

import (
	"errors"
	"net/http"

	multitenancyMiddleware "github.com/bartventer/gorm-multitenancy/middleware/nethttp/v8"
)

// TenantHeader carries the tenant slug on every tenant-scoped request.
const TenantHeader = "X-Tenant-ID"

// ErrTenantHeaderMissing is returned when the tenant header is absent.
var ErrTenantHeaderMissing = errors.New("tenant header missing")

// InjectMultiTenancy returns a middleware that resolves the tenant from
// the request header and stores it in the context. Requests without the
// header are rejected before reaching any handler; tenant-scoped code
// never runs with an unset tenant.
func InjectMultiTenancy() func(http.Handler) http.Handler {
	WithTenantConfig := multitenancyMiddleware.DefaultWithTenantConfig
	WithTenantConfig.TenantGetters = []func(r *http.Request) (string, error){
		func(r *http.Request) (string, error) {
			tenant := r.Header.Get(TenantHeader)
			if tenant == "" {
				return "", ErrTenantHeaderMissing
			}

			return tenant, nil
		},
	}

	return multitenancyMiddleware.WithTenant(WithTenantConfig)
}
