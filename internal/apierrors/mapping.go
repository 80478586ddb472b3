package apierrors

import (
	"net/http"
	"slices"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/repo"
	adkcontext "github.com/adk-labs/platform/utils/context"
)

const (
	TenantRequired  = "TENANT_REQUIRED"
	TenantNotFound  = "TENANT_NOT_FOUND"
	TenantSuspended = "TENANT_SUSPENDED"
)

// highPrio short-circuits the tenant resolution failures: whatever else
// is in the chain, a missing or unusable tenant decides the response.
var highPrio = []errs.Mapping[*APIError]{
	{
		Chain: []error{adkcontext.ErrTenantNotSet},
		Exposed: &APIError{
			Code:    TenantRequired,
			Message: "No tenant in request context",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Chain: []error{repo.ErrTenantNotFound},
		Exposed: &APIError{
			Code:    TenantNotFound,
			Message: "Tenant does not exist",
			Status:  http.StatusNotFound,
		},
	},
	{
		Chain: []error{repo.ErrTenantNotActive},
		Exposed: &APIError{
			Code:    TenantSuspended,
			Message: "Tenant is not accepting requests",
			Status:  http.StatusForbidden,
		},
	},
}

var APIErrorMapper = errs.NewMapper(slices.Concat(
	tenants,
	credentials,
	defaultMapper,
), highPrio)
