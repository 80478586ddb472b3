package apierrors

import (
	"net/http"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/repo"
)

const (
	ResourceNotFound = "RESOURCE_NOT_FOUND"
	UniqueError      = "UNIQUE_ERROR"
	AccountLocked    = "ACCOUNT_LOCKED"
)

// defaultMapper carries the taxonomy-level mappings. More specific
// mappings elsewhere win by matching more sentinels in the chain.
var defaultMapper = []errs.Mapping[*APIError]{
	{
		Chain: []error{errs.ErrValidation},
		Exposed: &APIError{
			Code:    ValidationErr,
			Message: "Request is not valid",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Chain: []error{errs.ErrAuthentication},
		Exposed: &APIError{
			Code:    UnauthorizedErr,
			Message: "Invalid credentials",
			Status:  http.StatusUnauthorized,
		},
	},
	{
		Chain: []error{errs.ErrAccountLocked},
		Exposed: &APIError{
			Code:    AccountLocked,
			Message: "Account is temporarily locked, try again later",
			Status:  http.StatusLocked,
		},
	},
	{
		Chain: []error{errs.ErrNotFound},
		Exposed: &APIError{
			Code:    ResourceNotFound,
			Message: "The requested resource was not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Chain: []error{repo.ErrNotFound},
		Exposed: &APIError{
			Code:    ResourceNotFound,
			Message: "The requested resource was not found",
			Status:  http.StatusNotFound,
		},
	},
	{
		Chain: []error{repo.ErrUniqueConstraint},
		Exposed: &APIError{
			Code:    UniqueError,
			Message: "Resource with such identifier already exists",
			Status:  http.StatusConflict,
		},
	},
}
