package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose

	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/utils/schemaname"
)

const (
	SharedMigrationTable = "goose_db_shared_version"
	TenantMigrationTable = "goose_db_tenant_version"
)

var (
	ErrOpeningMigrationCon = errors.New("error opening migration connection")
	ErrRunningMigrations   = errors.New("error running migrations")
)

// Migrator runs the versioned goose migrations that live outside the
// model-driven schema creation: shared reference data and incremental
// changes to already-provisioned tenant schemas.
type Migrator struct {
	dsn string
	cfg config.Migrations
}

func NewMigrator(cfg *config.Config) *Migrator {
	return &Migrator{
		dsn: cfg.Database.DSN(),
		cfg: cfg.Migrations,
	}
}

// MigrateSharedToLatest applies the shared-schema migrations.
func (m *Migrator) MigrateSharedToLatest(ctx context.Context) error {
	return m.run(ctx, SharedMigrationTable, m.cfg.SharedDir, "public")
}

// MigrateTenantsToLatest applies the tenant migrations to each given
// schema in turn. Each schema tracks its own migration version.
func (m *Migrator) MigrateTenantsToLatest(ctx context.Context, schemas []string) error {
	for _, schema := range schemas {
		err := schemaname.Validate(schema)
		if err != nil {
			return errs.Wrap(ErrRunningMigrations, err)
		}

		err = m.run(ctx, TenantMigrationTable, m.cfg.TenantDir, schema)
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *Migrator) run(ctx context.Context, table, dir, schema string) error {
	con, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return errs.Wrap(ErrOpeningMigrationCon, err)
	}
	defer con.Close()

	_, err = con.ExecContext(ctx, fmt.Sprintf(`SET search_path TO %q, public`, schema))
	if err != nil {
		return errs.Wrap(ErrRunningMigrations, err)
	}

	goose.SetTableName(table)

	err = goose.SetDialect("postgres")
	if err != nil {
		return errs.Wrap(ErrRunningMigrations, err)
	}

	err = goose.UpContext(ctx, con, dir)
	if err != nil {
		return errs.Wrap(ErrRunningMigrations, err)
	}

	return nil
}
