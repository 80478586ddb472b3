package commands

import (
	"errors"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"

	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/db"
	"github.com/adk-labs/platform/internal/manager"
	"github.com/adk-labs/platform/internal/repo"
	"github.com/adk-labs/platform/internal/repo/sql"
)

var (
	ErrSlugRequired   = errors.New("tenant slug is required")
	ErrTenantNotFound = errors.New("tenant not found")
)

// CommandFactory wires the registry manager behind the CLI commands.
type CommandFactory struct {
	dbCon    *multitenancy.DB
	r        repo.Repo
	tm       *manager.TenantManager
	migrator *db.Migrator
}

func NewCommandFactory(cfg *config.Config, dbCon *multitenancy.DB) *CommandFactory {
	r := sql.NewRepository(dbCon)

	return &CommandFactory{
		dbCon:    dbCon,
		r:        r,
		tm:       manager.NewTenantManager(r, dbCon, cfg.Provisioning.SchemaPrefix),
		migrator: db.NewMigrator(cfg),
	}
}
