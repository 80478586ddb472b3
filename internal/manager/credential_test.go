package manager_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/manager"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/internal/repo/sql"
	"github.com/adk-labs/platform/internal/testutils"
	adkcontext "github.com/adk-labs/platform/utils/context"
	"github.com/adk-labs/platform/utils/jwtauth"
)

const testPassword = "correct horse battery staple"

type captureMailer struct {
	email string
	token string
	sent  int
}

func (m *captureMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.email = email
	m.token = token
	m.sent++

	return nil
}

func SetupCredentialManager(t *testing.T) (
	*manager.CredentialManager,
	*jwtauth.Signer,
	*captureMailer,
	context.Context,
	string,
) {
	t.Helper()

	cfg := testutils.TestConfig(t)
	db, tenants := testutils.NewTestDB(t, cfg, "main")

	r := sql.NewRepository(db)
	signer := jwtauth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	mailer := &captureMailer{}

	cm := manager.NewCredentialManager(r, signer, cfg.Auth, mailer)
	ctx := testutils.CreateCtxWithTenant(tenants[0].Slug)

	return cm, signer, mailer, ctx, tenants[0].Slug
}

func newUser(t *testing.T, cm *manager.CredentialManager, ctx context.Context) *model.User {
	t.Helper()

	email := uniqueSlug("user") + "@example.com"

	user, err := cm.CreateUser(ctx, email, "Test User", testPassword, model.UserRoleMember)
	require.NoError(t, err)

	return user
}

func TestCreateUser(t *testing.T) {
	cm, _, _, ctx, _ := SetupCredentialManager(t)

	t.Run("hashes the password", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		assert.NotEmpty(t, user.PasswordHash)
		assert.NotContains(t, user.PasswordHash, testPassword)
		assert.True(t, user.Active)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := cm.CreateUser(ctx, uniqueSlug("short")+"@example.com", "Short", "pw", model.UserRoleMember)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, manager.ErrWeakPassword)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		_, err := cm.CreateUser(ctx, user.Email, "Again", testPassword, model.UserRoleMember)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, manager.ErrDuplicateEmail)
	})
}

func TestLogin(t *testing.T) {
	cm, signer, _, ctx, slug := SetupCredentialManager(t)

	t.Run("issues a token pair bound to the tenant", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		pair, err := cm.Login(ctx, user.Email, testPassword)
		require.NoError(t, err)

		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "Bearer", pair.TokenType)

		claims, err := signer.Verify(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, slug, claims.TenantID)
		assert.Equal(t, user.ID.String(), claims.Subject)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		_, err := cm.Login(ctx, user.Email, "not the password")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})

	t.Run("rejects unknown email the same way", func(t *testing.T) {
		_, err := cm.Login(ctx, uniqueSlug("ghost")+"@example.com", testPassword)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})

	t.Run("fails closed without a tenant in context", func(t *testing.T) {
		_, err := cm.Login(context.Background(), "anyone@example.com", testPassword)
		require.Error(t, err)
		assert.ErrorIs(t, err, adkcontext.ErrTenantNotSet)
	})
}

func TestLockout(t *testing.T) {
	cm, _, _, ctx, _ := SetupCredentialManager(t)
	user := newUser(t, cm, ctx)

	// threshold is 3 in the test config
	for range 3 {
		_, err := cm.Login(ctx, user.Email, "wrong password")
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	}

	t.Run("correct password fails while locked", func(t *testing.T) {
		_, err := cm.Login(ctx, user.Email, testPassword)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAccountLocked)
	})

	t.Run("lock expires after the window", func(t *testing.T) {
		cm.SetNow(func() time.Time { return time.Now().Add(16 * time.Minute) })
		t.Cleanup(func() { cm.SetNow(time.Now) })

		pair, err := cm.Login(ctx, user.Email, testPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
	})
}

func TestRotate(t *testing.T) {
	cm, _, _, ctx, _ := SetupCredentialManager(t)

	t.Run("exchanges the refresh token exactly once", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		first, err := cm.Login(ctx, user.Email, testPassword)
		require.NoError(t, err)

		second, err := cm.Rotate(ctx, first.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
		assert.NotEmpty(t, second.AccessToken)
	})

	t.Run("reuse of a rotated token revokes the whole family", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		first, err := cm.Login(ctx, user.Email, testPassword)
		require.NoError(t, err)

		second, err := cm.Rotate(ctx, first.RefreshToken)
		require.NoError(t, err)

		_, err = cm.Rotate(ctx, first.RefreshToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)

		_, err = cm.Rotate(ctx, second.RefreshToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})

	t.Run("rejects unknown token", func(t *testing.T) {
		_, err := cm.Rotate(ctx, "no-such-token")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		pair, err := cm.Login(ctx, user.Email, testPassword)
		require.NoError(t, err)

		cm.SetNow(func() time.Time { return time.Now().Add(8 * 24 * time.Hour) })
		t.Cleanup(func() { cm.SetNow(time.Now) })

		_, err = cm.Rotate(ctx, pair.RefreshToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})
}

func TestRevokeAll(t *testing.T) {
	cm, _, _, ctx, _ := SetupCredentialManager(t)
	user := newUser(t, cm, ctx)

	first, err := cm.Login(ctx, user.Email, testPassword)
	require.NoError(t, err)

	second, err := cm.Login(ctx, user.Email, testPassword)
	require.NoError(t, err)

	require.NoError(t, cm.RevokeAll(ctx, user.ID))

	_, err = cm.Rotate(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, errs.ErrAuthentication)

	_, err = cm.Rotate(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, errs.ErrAuthentication)
}

func TestPasswordReset(t *testing.T) {
	cm, _, mailer, ctx, _ := SetupCredentialManager(t)

	t.Run("unknown email succeeds without sending mail", func(t *testing.T) {
		sent := mailer.sent

		err := cm.RequestPasswordReset(ctx, uniqueSlug("ghost")+"@example.com")
		require.NoError(t, err)
		assert.Equal(t, sent, mailer.sent)
	})

	t.Run("reset installs the new password and ends sessions", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		pair, err := cm.Login(ctx, user.Email, testPassword)
		require.NoError(t, err)

		require.NoError(t, cm.RequestPasswordReset(ctx, user.Email))
		assert.Equal(t, user.Email, mailer.email)
		require.NotEmpty(t, mailer.token)

		newPassword := "an entirely new password"
		require.NoError(t, cm.ConsumeReset(ctx, mailer.token, newPassword))

		_, err = cm.Login(ctx, user.Email, testPassword)
		assert.ErrorIs(t, err, errs.ErrAuthentication)

		_, err = cm.Login(ctx, user.Email, newPassword)
		assert.NoError(t, err)

		_, err = cm.Rotate(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})

	t.Run("token redeems at most once", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		require.NoError(t, cm.RequestPasswordReset(ctx, user.Email))
		token := mailer.token

		require.NoError(t, cm.ConsumeReset(ctx, token, "another new password"))

		err := cm.ConsumeReset(ctx, token, "yet another password")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthentication)
	})

	t.Run("rejects weak replacement password", func(t *testing.T) {
		err := cm.ConsumeReset(ctx, "irrelevant", "pw")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("reset clears an active lockout", func(t *testing.T) {
		user := newUser(t, cm, ctx)

		for range 3 {
			_, _ = cm.Login(ctx, user.Email, "wrong password")
		}

		_, err := cm.Login(ctx, user.Email, testPassword)
		require.ErrorIs(t, err, errs.ErrAccountLocked)

		require.NoError(t, cm.RequestPasswordReset(ctx, user.Email))
		require.NoError(t, cm.ConsumeReset(ctx, mailer.token, "fresh after lockout"))

		_, err = cm.Login(ctx, user.Email, "fresh after lockout")
		assert.NoError(t, err)
	})
}
