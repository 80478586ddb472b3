package apierrors

import "net/http"

const (
	InternalServerErr = "INTERNAL_SERVER_ERROR"
	JSONDecodeErr     = "JSON_DECODE_ERROR"
	ValidationErr     = "VALIDATION_ERROR"
	UnauthorizedErr   = "UNAUTHORIZED"
	RequiredHeaderErr = "REQUIRED_HEADER_ERROR"
)

// APIError is the exposed form of an internal error. Message and Code
// are written to the client verbatim, so nothing sensitive belongs in
// either.
type APIError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Context *map[string]any `json:"context,omitempty"`
}

// ErrorMessage is the JSON envelope every error response uses.
type ErrorMessage struct {
	Error DetailedError `json:"error"`
}

type DetailedError struct {
	APIError

	RequestID *string `json:"requestId,omitempty"`
}

func (e *APIError) SetContext(context *map[string]any) {
	e.Context = context
}

func (e *APIError) DefaultError() *APIError {
	return InternalServerErrorMessage()
}

func InternalServerErrorMessage() *APIError {
	return &APIError{
		Code:    InternalServerErr,
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
	}
}

func JSONDecodeErrorMessage() *APIError {
	return &APIError{
		Code:    JSONDecodeErr,
		Message: "Can't decode JSON body",
		Status:  http.StatusBadRequest,
	}
}

func UnauthorizedErrorMessage() *APIError {
	return &APIError{
		Code:    UnauthorizedErr,
		Message: "Authentication required",
		Status:  http.StatusUnauthorized,
	}
}

func RequiredHeaderError(message string) *APIError {
	return &APIError{
		Code:    RequiredHeaderErr,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}
