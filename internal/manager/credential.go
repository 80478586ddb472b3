package manager

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/log"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/internal/notifier"
	"github.com/adk-labs/platform/internal/repo"
	adkcontext "github.com/adk-labs/platform/utils/context"
	"github.com/adk-labs/platform/utils/jwtauth"
)

const MinPasswordLength = 8

// dummyPasswordHash keeps the cost of a login against an unknown email
// in the same ballpark as one against a known email.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Credential is the credential lifecycle surface exposed to handlers.
type Credential interface {
	CreateUser(ctx context.Context, email, fullName, password string, role model.UserRole) (*model.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	IssueTokenPair(ctx context.Context, user *model.User) (*TokenPair, error)
	Rotate(ctx context.Context, refreshToken string) (*TokenPair, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConsumeReset(ctx context.Context, resetToken, newPassword string) error
}

// TokenPair is what a successful login or rotation hands back: a short
// lived signed access token plus an opaque single-use refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// CredentialManager owns passwords, refresh tokens and reset tokens for
// the users of the tenant carried in the call context. Every query it
// runs resolves against that tenant's schema.
type CredentialManager struct {
	repo   repo.Repo
	signer *jwtauth.Signer
	cfg    config.Auth
	mailer notifier.Mailer

	now func() time.Time
}

func NewCredentialManager(
	mrepo repo.Repo,
	signer *jwtauth.Signer,
	cfg config.Auth,
	mailer notifier.Mailer,
) *CredentialManager {
	return &CredentialManager{
		repo:   mrepo,
		signer: signer,
		cfg:    cfg,
		mailer: mailer,
		now:    time.Now,
	}
}

func (m *CredentialManager) CreateUser(
	ctx context.Context,
	email, fullName, password string,
	role model.UserRole,
) (*model.User, error) {
	if email == "" {
		return nil, errs.Wrap(errs.ErrValidation, ErrCreatingUser)
	}

	err := validatePassword(password)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(ErrHashingPassword, err)
	}

	if role == "" {
		role = model.UserRoleMember
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}

	err = m.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrUniqueConstraint) {
			return nil, errs.Wrap(errs.ErrValidation, ErrDuplicateEmail)
		}

		return nil, errs.Wrap(ErrCreatingUser, err)
	}

	return user, nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errs.Wrap(errs.ErrValidation, ErrWeakPassword)
	}

	return nil
}

// Login verifies the password and, on success, hands out a token pair.
// Lockout is checked before the password so a locked account fails the
// same way whether or not the password is right.
func (m *CredentialManager) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := m.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return m.IssueTokenPair(ctx, user)
}

func (m *CredentialManager) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	now := m.now()
	user := &model.User{}

	found, err := m.repo.First(ctx, user, *repo.NewQuery().Where(repo.EmailField, email))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	if !found {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))

		return nil, errs.Wrap(errs.ErrAuthentication, ErrInvalidCredentials)
	}

	if user.Locked(now) {
		return nil, errs.ErrAccountLocked
	}

	if !user.Active {
		return nil, errs.Wrap(errs.ErrAuthentication, ErrAccountInactive)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = m.recordFailedAttempt(ctx, user, now)
		if err != nil {
			log.Error(ctx, "Failed to record failed login attempt", err)
		}

		return nil, errs.Wrap(errs.ErrAuthentication, ErrInvalidCredentials)
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		err = m.clearLockState(ctx, m.repo, user)
		if err != nil {
			log.Error(ctx, "Failed to clear lockout counters", err)
		}
	}

	return user, nil
}

// recordFailedAttempt bumps the failure counter and, once it reaches the
// configured threshold, locks the account for the lockout window. A
// failure landing after a quiet period longer than the window restarts
// the count instead of extending a stale streak.
func (m *CredentialManager) recordFailedAttempt(ctx context.Context, user *model.User, now time.Time) error {
	return m.repo.Transaction(ctx, func(ctx context.Context, r repo.Repo) error {
		current := &model.User{}

		found, err := r.First(ctx, current, *repo.NewQuery().Where(repo.IDField, user.ID))
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		if !found {
			return nil
		}

		if now.Sub(current.UpdatedAt) > m.cfg.LockoutWindow {
			current.FailedLoginAttempts = 1
		} else {
			current.FailedLoginAttempts++
		}

		if current.FailedLoginAttempts >= m.cfg.LockoutThreshold {
			lockedUntil := now.Add(m.cfg.LockoutWindow)
			current.LockedUntil = &lockedUntil
			current.FailedLoginAttempts = 0
		}

		query := repo.NewQuery().
			Where(repo.IDField, current.ID).
			Select(repo.FailedLoginAttemptsField, repo.LockedUntilField)

		_, err = r.Patch(ctx, current, *query)

		return err
	})
}

func (m *CredentialManager) clearLockState(ctx context.Context, r repo.Repo, user *model.User) error {
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil

	query := repo.NewQuery().
		Where(repo.IDField, user.ID).
		Select(repo.FailedLoginAttemptsField, repo.LockedUntilField)

	_, err := r.Patch(ctx, user, *query)

	return err
}

// IssueTokenPair signs an access token bound to the tenant in the call
// context and persists the hash of a fresh refresh token.
func (m *CredentialManager) IssueTokenPair(ctx context.Context, user *model.User) (*TokenPair, error) {
	return m.issueTokenPair(ctx, m.repo, user, m.now())
}

func (m *CredentialManager) issueTokenPair(
	ctx context.Context,
	r repo.Repo,
	user *model.User,
	now time.Time,
) (*TokenPair, error) {
	tenantID, err := adkcontext.ExtractTenantID(ctx)
	if err != nil {
		return nil, err
	}

	accessToken, err := m.signer.Sign(tenantID, user.ID.String(), user.Email, string(user.Role), now)
	if err != nil {
		return nil, errs.Wrap(ErrIssuingTokens, err)
	}

	raw, err := newOpaqueToken()
	if err != nil {
		return nil, err
	}

	refreshToken := &model.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(m.cfg.TokenPepper, raw),
		ExpiresAt: now.Add(m.cfg.RefreshTokenTTL),
	}

	err = r.Create(ctx, refreshToken)
	if err != nil {
		return nil, errs.Wrap(ErrIssuingTokens, err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: raw,
		TokenType:    "Bearer",
		ExpiresIn:    int64(m.signer.TTL().Seconds()),
	}, nil
}

// Rotate exchanges a refresh token for a new pair. The presented token
// is retired in the same transaction that issues its successor, and the
// retirement is conditional on the token still being unrevoked, so of
// two concurrent rotations exactly one wins. Presenting an already
// rotated token is treated as theft and revokes every live token of the
// user.
func (m *CredentialManager) Rotate(ctx context.Context, refreshToken string) (*TokenPair, error) {
	now := m.now()
	hash := hashToken(m.cfg.TokenPepper, refreshToken)

	var (
		pair  *TokenPair
		reuse bool
	)

	err := m.repo.Transaction(ctx, func(ctx context.Context, r repo.Repo) error {
		token := &model.RefreshToken{}

		found, err := r.First(ctx, token, *repo.NewQuery().Where(repo.TokenHashField, hash))
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		if !found {
			return errs.Wrap(errs.ErrAuthentication, ErrInvalidRefreshToken)
		}

		if token.RevokedAt != nil {
			log.Warn(ctx, "Rotated refresh token presented again, revoking all sessions")

			// returning nil keeps the mass revocation committed
			reuse = true

			return m.revokeAll(ctx, r, token.UserID, now)
		}

		if !token.Usable(now) {
			return errs.Wrap(errs.ErrAuthentication, ErrInvalidRefreshToken)
		}

		token.RevokedAt = &now

		query := repo.NewQuery().
			Where(repo.TokenHashField, hash).
			WhereNull(repo.RevokedAtField).
			Select(repo.RevokedAtField)

		retired, err := r.Patch(ctx, token, *query)
		if err != nil {
			return err
		}

		if !retired {
			return errs.Wrap(errs.ErrAuthentication, ErrInvalidRefreshToken)
		}

		user := &model.User{}

		found, err = r.First(ctx, user, *repo.NewQuery().Where(repo.IDField, token.UserID))
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		if !found || !user.Active || user.Locked(now) {
			return errs.Wrap(errs.ErrAuthentication, ErrInvalidRefreshToken)
		}

		pair, err = m.issueTokenPair(ctx, r, user, now)

		return err
	})
	if err != nil {
		return nil, err
	}

	if reuse {
		return nil, errs.Wrap(errs.ErrAuthentication, ErrInvalidRefreshToken)
	}

	return pair, nil
}

// RevokeAll retires every live refresh token of the user, ending all of
// their sessions at once.
func (m *CredentialManager) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return m.revokeAll(ctx, m.repo, userID, m.now())
}

func (m *CredentialManager) revokeAll(ctx context.Context, r repo.Repo, userID uuid.UUID, now time.Time) error {
	token := &model.RefreshToken{RevokedAt: &now}

	query := repo.NewQuery().
		Where(repo.UserIDField, userID).
		WhereNull(repo.RevokedAtField).
		Select(repo.RevokedAtField)

	_, err := r.Patch(ctx, token, *query)
	if err != nil {
		return errs.Wrap(ErrRevokingTokens, err)
	}

	return nil
}

// RequestPasswordReset issues a reset token and mails its raw value.
// The outcome is identical whether or not the email belongs to a user,
// so the endpoint cannot be used to probe for accounts.
func (m *CredentialManager) RequestPasswordReset(ctx context.Context, email string) error {
	now := m.now()
	user := &model.User{}

	found, err := m.repo.First(ctx, user, *repo.NewQuery().Where(repo.EmailField, email))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	if !found || !user.Active {
		return nil
	}

	raw, err := newOpaqueToken()
	if err != nil {
		return err
	}

	resetToken := &model.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(m.cfg.TokenPepper, raw),
		ExpiresAt: now.Add(m.cfg.ResetTokenTTL),
	}

	err = m.repo.Create(ctx, resetToken)
	if err != nil {
		return errs.Wrap(ErrResettingPassword, err)
	}

	return m.mailer.SendPasswordReset(ctx, email, raw)
}

// ConsumeReset redeems a reset token, installs the new password, clears
// any lockout and ends every existing session. The token is marked used
// under the same null-guard trick as rotation, so it redeems at most
// once even under concurrent requests.
func (m *CredentialManager) ConsumeReset(ctx context.Context, resetToken, newPassword string) error {
	err := validatePassword(newPassword)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errs.Wrap(ErrHashingPassword, err)
	}

	now := m.now()
	tokenHash := hashToken(m.cfg.TokenPepper, resetToken)

	return m.repo.Transaction(ctx, func(ctx context.Context, r repo.Repo) error {
		token := &model.PasswordResetToken{}

		found, err := r.First(ctx, token, *repo.NewQuery().Where(repo.TokenHashField, tokenHash))
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		if !found || !token.Usable(now) {
			return errs.Wrap(errs.ErrAuthentication, ErrInvalidResetToken)
		}

		token.UsedAt = &now

		query := repo.NewQuery().
			Where(repo.TokenHashField, tokenHash).
			WhereNull(repo.UsedAtField).
			Select(repo.UsedAtField)

		redeemed, err := r.Patch(ctx, token, *query)
		if err != nil {
			return err
		}

		if !redeemed {
			return errs.Wrap(errs.ErrAuthentication, ErrInvalidResetToken)
		}

		user := &model.User{
			ID:           token.UserID,
			PasswordHash: string(hash),
		}

		userQuery := repo.NewQuery().
			Where(repo.IDField, token.UserID).
			Select(repo.PasswordHashField, repo.FailedLoginAttemptsField, repo.LockedUntilField)

		updated, err := r.Patch(ctx, user, *userQuery)
		if err != nil {
			return errs.Wrap(ErrResettingPassword, err)
		}

		if !updated {
			return errs.Wrap(errs.ErrAuthentication, ErrInvalidResetToken)
		}

		return m.revokeAll(ctx, r, token.UserID, now)
	})
}
