package testutils

import (
	"context"

	adkcontext "github.com/adk-labs/platform/utils/context"
)

// CreateCtxWithTenant returns a context carrying the tenant slug the
// way the HTTP middleware would set it.
func CreateCtxWithTenant(tenant string) context.Context {
	return adkcontext.CreateTenantContext(context.Background(), tenant)
}

// CreateCtxWithClaims simulates a fully authenticated request context.
func CreateCtxWithClaims(tenant, subject, email, role string) context.Context {
	ctx := CreateCtxWithTenant(tenant)

	return adkcontext.InjectClaims(ctx, &adkcontext.Claims{
		TenantID: tenant,
		Subject:  subject,
		Email:    email,
		Role:     role,
	})
}
