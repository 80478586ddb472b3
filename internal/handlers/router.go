package handlers

import (
	"net/http"

	"github.com/adk-labs/platform/internal/manager"
	"github.com/adk-labs/platform/internal/metrics"
	"github.com/adk-labs/platform/internal/middleware"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/utils/jwtauth"
)

// NewRouter wires the HTTP surface. Three middleware chains exist:
// base (request ID, logging, metrics, panic recovery) for operational
// endpoints, tenant (base plus tenant resolution) for the credential
// endpoints, and authed (tenant plus bearer verification) for anything
// acting on behalf of a user. Tenant administration additionally
// requires the admin role.
func NewRouter(m *manager.Manager, signer *jwtauth.Signer) http.Handler {
	h := New(m)
	mux := http.NewServeMux()

	tenant := func(next http.Handler) http.Handler {
		return middleware.InjectMultiTenancy()(next)
	}
	authed := func(next http.Handler) http.Handler {
		return tenant(middleware.Authentication(signer)(next))
	}
	admin := func(next http.Handler) http.Handler {
		return authed(middleware.RequireRole(string(model.UserRoleAdmin))(next))
	}

	mux.Handle("POST /v1/auth/login", tenant(http.HandlerFunc(h.Login)))
	mux.Handle("POST /v1/auth/refresh", tenant(http.HandlerFunc(h.Refresh)))
	mux.Handle("POST /v1/auth/logout", authed(http.HandlerFunc(h.Logout)))
	mux.Handle("POST /v1/auth/password-reset/request", tenant(http.HandlerFunc(h.RequestPasswordReset)))
	mux.Handle("POST /v1/auth/password-reset/confirm", tenant(http.HandlerFunc(h.ConfirmPasswordReset)))

	mux.Handle("POST /v1/users", admin(http.HandlerFunc(h.CreateUser)))

	mux.Handle("POST /v1/admin/tenants", admin(http.HandlerFunc(h.CreateTenant)))
	mux.Handle("GET /v1/admin/tenants", admin(http.HandlerFunc(h.ListTenants)))
	mux.Handle("GET /v1/admin/tenants/{slug}", admin(http.HandlerFunc(h.GetTenant)))
	mux.Handle("PATCH /v1/admin/tenants/{slug}", admin(http.HandlerFunc(h.UpdateTenant)))
	mux.Handle("DELETE /v1/admin/tenants/{slug}", admin(http.HandlerFunc(h.DeprovisionTenant)))

	mux.Handle("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = mux
	handler = middleware.PanicRecovery()(handler)
	handler = metrics.Middleware()(handler)
	handler = middleware.Logging()(handler)
	handler = middleware.InjectRequestID()(handler)

	return handler
}
