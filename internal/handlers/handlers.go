package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adk-labs/platform/internal/api/write"
	"github.com/adk-labs/platform/internal/apierrors"
	"github.com/adk-labs/platform/internal/manager"
)

// Handler hosts the HTTP surface over the domain managers.
type Handler struct {
	manager *manager.Manager
}

func New(m *manager.Manager) *Handler {
	return &Handler{manager: m}
}

// decodeBody parses the JSON request body into dst. On failure it has
// already written the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		write.ErrorResponse(r.Context(), w, apierrors.JSONDecodeErrorMessage())

		return false
	}

	return true
}
