package apierrors

import (
	"net/http"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/manager"
	"github.com/adk-labs/platform/internal/model"
)

const (
	SlugTaken         = "SLUG_TAKEN"
	TenantNotDeleted  = "TENANT_NOT_DELETED"
	InvalidTransition = "INVALID_STATUS_TRANSITION"
)

var tenants = []errs.Mapping[*APIError]{
	{
		Chain: []error{errs.ErrValidation, manager.ErrDuplicateSlug},
		Exposed: &APIError{
			Code:    SlugTaken,
			Message: "A tenant with this slug already exists",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Chain: []error{errs.ErrValidation, manager.ErrTenantNotDeleted},
		Exposed: &APIError{
			Code:    TenantNotDeleted,
			Message: "Tenant must be marked deleted before it can be deprovisioned",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Chain: []error{errs.ErrValidation, model.ErrInvalidStatusTransition},
		Exposed: &APIError{
			Code:    InvalidTransition,
			Message: "Requested status change is not a legal lifecycle step",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Chain: []error{manager.ErrListingTenants},
		Exposed: &APIError{
			Code:    "GET_TENANTS",
			Message: "Failed to get tenants",
			Status:  http.StatusInternalServerError,
		},
	},
}
