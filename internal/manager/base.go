package manager

import (
	multitenancy "github.com/bartventer/gorm-multitenancy/v8"

	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/notifier"
	"github.com/adk-labs/platform/internal/repo"
	"github.com/adk-labs/platform/utils/jwtauth"
)

// Manager bundles the domain managers behind one constructor so the
// binaries wire dependencies in a single place.
type Manager struct {
	Tenant      Tenant
	Credentials Credential
}

func New(
	mrepo repo.Repo,
	mdb *multitenancy.DB,
	cfg *config.Config,
	mailer notifier.Mailer,
) *Manager {
	signer := jwtauth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	return &Manager{
		Tenant:      NewTenantManager(mrepo, mdb, cfg.Provisioning.SchemaPrefix),
		Credentials: NewCredentialManager(mrepo, signer, cfg.Auth, mailer),
	}
}
