package apierrors

import (
	"net/http"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/manager"
)

const WeakPassword = "WEAK_PASSWORD"

var credentials = []errs.Mapping[*APIError]{
	{
		Chain: []error{errs.ErrValidation, manager.ErrWeakPassword},
		Exposed: &APIError{
			Code:    WeakPassword,
			Message: "Password does not meet the minimum length",
			Status:  http.StatusBadRequest,
		},
	},
	{
		Chain: []error{errs.ErrValidation, manager.ErrDuplicateEmail},
		Exposed: &APIError{
			Code:    UniqueError,
			Message: "A user with this email already exists",
			Status:  http.StatusConflict,
		},
	},
}
