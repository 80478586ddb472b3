package write

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/adk-labs/platform/internal/apierrors"
	"github.com/adk-labs/platform/internal/log"
	adkcontext "github.com/adk-labs/platform/utils/context"
)

// ErrorResponse writes the exposed form of an error to the client,
// stamped with the request ID so logs and responses can be correlated.
func ErrorResponse(ctx context.Context, w http.ResponseWriter, apiErr *apierrors.APIError) {
	requestID, _ := adkcontext.GetRequestID(ctx)

	message := apierrors.ErrorMessage{
		Error: apierrors.DetailedError{
			APIError:  *apiErr,
			RequestID: &requestID,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)

	enc := json.NewEncoder(w)

	err := enc.Encode(&message)
	if err != nil {
		log.Error(ctx, "Failed to encode error response", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)

		return
	}
}

// Error maps an internal error and writes it in one step.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	ErrorResponse(ctx, w, apierrors.APIErrorMapper.Transform(ctx, err))
}

// JSON writes a success payload with the given status code.
func JSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	enc := json.NewEncoder(w)

	err := enc.Encode(payload)
	if err != nil {
		log.Error(ctx, "Failed to encode response", err)
	}
}
