package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	multitenancyMiddleware "github.com/bartventer/gorm-multitenancy/middleware/nethttp/v8"

	"github.com/adk-labs/platform/internal/middleware"
)

func TestInjectMultiTenancy(t *testing.T) {
	var capturedTenant string

	handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		tenant, ok := r.Context().Value(multitenancyMiddleware.TenantKey).(string)
		if ok {
			capturedTenant = tenant
		}
	})

	wrapped := middleware.InjectMultiTenancy()(handler)

	t.Run("resolves tenant from header", func(t *testing.T) {
		capturedTenant = ""

		req := httptest.NewRequest(http.MethodGet, "/v1/workshops", nil)
		req.Header.Set(middleware.TenantHeader, "acme")

		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, "acme", capturedTenant)
	})

	t.Run("rejects request without header", func(t *testing.T) {
		capturedTenant = ""

		req := httptest.NewRequest(http.MethodGet, "/v1/workshops", nil)

		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)

		assert.NotEqual(t, http.StatusOK, w.Result().StatusCode)
		assert.Empty(t, capturedTenant)
	})
}
