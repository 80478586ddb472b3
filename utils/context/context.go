package context

import (
	"context"
	"errors"

	"github.com/bartventer/gorm-multitenancy/middleware/nethttp/v8"
	"github.com/google/uuid"

	"github.com/adk-labs/platform/internal/errs"
)

var (
	// ErrTenantNotSet is a programmer error: a tenant-scoped code path ran
	// before any tenant was placed in the context. It must never be
	// swallowed; failing loudly here is what keeps a request from
	// querying the wrong schema.
	ErrTenantNotSet = errors.New("no tenant set in context")

	ErrGetRequestID = errors.New("no requestID found in context")
	ErrNoClaims     = errors.New("no authentication claims in context")
)

type Opt func(ctx context.Context) context.Context

//nolint:fatcontext
func New(ctx context.Context, opts ...Opt) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	for _, opt := range opts {
		ctx = opt(ctx)
	}

	return ctx
}

// CreateTenantContext returns a child context carrying the tenant id.
// The value lives on the call chain of one request, so concurrent
// requests never observe each other's tenant.
func CreateTenantContext(ctx context.Context, tenantID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, nethttp.TenantKey, tenantID)
}

func WithTenant(tenantID string) Opt {
	return func(ctx context.Context) context.Context {
		return CreateTenantContext(ctx, tenantID)
	}
}

// ExtractTenantID returns the tenant id held by the context and fails
// closed with ErrTenantNotSet when there is none.
func ExtractTenantID(ctx context.Context) (string, error) {
	tenantID, ok := ctx.Value(nethttp.TenantKey).(string)
	if !ok || tenantID == "" {
		return "", errs.Wrap(ErrTenantNotSet, nethttp.ErrTenantInvalid)
	}

	return tenantID, nil
}

// ExtractTenantIDOptional never fails; it reports whether a tenant id
// is present. Intended for logging and shared-only code paths.
func ExtractTenantIDOptional(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(nethttp.TenantKey).(string)

	return tenantID, ok && tenantID != ""
}

// ClearTenant removes the tenant id from the returned context.
// Middleware scopes tenant values to a single request already; this is
// for call sites that hand a context onward past their tenant scope.
func ClearTenant(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return context.WithValue(ctx, nethttp.TenantKey, "")
}

// RunWithTenant executes fn with the tenant id set. The value is bound
// to the derived context only, so the scope ends when fn returns, on
// success, error or cancellation alike.
func RunWithTenant(ctx context.Context, tenantID string, fn func(ctx context.Context) error) error {
	return fn(CreateTenantContext(ctx, tenantID))
}

type key string

const (
	requestID = key("requestID")
	claimsKey = key("authClaims")
)

func InjectRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestID, uuid.NewString())
}

func GetRequestID(ctx context.Context) (string, error) {
	requestID, ok := ctx.Value(requestID).(string)
	if !ok || requestID == "" {
		return "", ErrGetRequestID
	}

	return requestID, nil
}

// Claims is the decoded payload of a bearer credential. Signature
// verification happens in the auth middleware; everything downstream
// consumes only this claim set.
type Claims struct {
	TenantID string
	Subject  string
	Email    string
	Role     string
}

func InjectClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func WithClaims(claims *Claims) Opt {
	return func(ctx context.Context) context.Context {
		return InjectClaims(ctx, claims)
	}
}

func ExtractClaims(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}

	return claims, nil
}

func ExtractSubject(ctx context.Context) (string, error) {
	claims, err := ExtractClaims(ctx)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func ExtractRole(ctx context.Context) (string, error) {
	claims, err := ExtractClaims(ctx)
	if err != nil {
		return "", err
	}

	return claims.Role, nil
}
