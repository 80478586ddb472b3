package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/adk-labs/platform/internal/api/write"
	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/metrics"
	"github.com/adk-labs/platform/internal/model"
	adkcontext "github.com/adk-labs/platform/utils/context"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.manager.Credentials.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrAccountLocked) {
			metrics.AccountLockoutCounter.Inc()
		}

		write.Error(ctx, w, err)

		return
	}

	metrics.TokensIssuedCounter.WithLabelValues("password").Inc()
	write.JSON(ctx, w, http.StatusOK, pair)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := h.manager.Credentials.Rotate(ctx, req.RefreshToken)
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	metrics.TokensIssuedCounter.WithLabelValues("refresh_token").Inc()
	write.JSON(ctx, w, http.StatusOK, pair)
}

// Logout ends every session of the authenticated user.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subject, err := adkcontext.ExtractSubject(ctx)
	if err != nil {
		write.Error(ctx, w, errs.Wrap(errs.ErrAuthentication, err))

		return
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		write.Error(ctx, w, errs.Wrap(errs.ErrAuthentication, err))

		return
	}

	err = h.manager.Credentials.RevokeAll(ctx, userID)
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusNoContent, nil)
}

// RequestPasswordReset always answers 202: the response must not reveal
// whether the email belongs to an account.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req resetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.manager.Credentials.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req resetConfirmRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.manager.Credentials.ConsumeReset(ctx, req.Token, req.NewPassword)
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusNoContent, nil)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.manager.Credentials.CreateUser(
		ctx, req.Email, req.FullName, req.Password, model.UserRole(req.Role),
	)
	if err != nil {
		write.Error(ctx, w, err)

		return
	}

	write.JSON(ctx, w, http.StatusCreated, map[string]string{
		"id":    user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
	})
}
