package manager

import "errors"

var (
	ErrValidatingTenant = errors.New("failed to validate tenant")
	ErrDuplicateSlug    = errors.New("tenant slug already in use")
	ErrCreatingTenant   = errors.New("failed to create tenant")
	ErrGettingTenant    = errors.New("failed to get tenant")
	ErrListingTenants   = errors.New("failed to list tenants")
	ErrUpdatingTenant   = errors.New("failed to update tenant")
	ErrTenantNotDeleted = errors.New("tenant must be marked deleted before deprovisioning")
	ErrDeprovisioning   = errors.New("failed to deprovision tenant")
	ErrActivatingTenant = errors.New("failed to activate tenant after provisioning")

	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountInactive     = errors.New("account is deactivated")
	ErrResettingPassword   = errors.New("failed to reset password")
	ErrCreatingUser        = errors.New("failed to create user")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrWeakPassword        = errors.New("password does not meet minimum length")
	ErrHashingPassword     = errors.New("failed to hash password")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid or expired")
	ErrInvalidResetToken   = errors.New("reset token is invalid or expired")
	ErrIssuingTokens       = errors.New("failed to issue token pair")
	ErrRevokingTokens      = errors.New("failed to revoke refresh tokens")
	ErrGeneratingToken     = errors.New("failed to generate opaque token")
)
