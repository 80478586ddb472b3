package db

import (
	"context"

	"github.com/samber/oops"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"

	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/log"
)

const DBLogDomain = "db"

// StartDB opens the DB connection and migrates the shared schema so the
// tenant registry and reference tables exist before the first request.
func StartDB(ctx context.Context, cfg *config.Config) (*multitenancy.DB, error) {
	log.Info(ctx, "Starting DB connection")

	dbCon, err := StartDBConnection(ctx, cfg.Database, cfg.DatabaseReplicas)
	if err != nil {
		return nil, oops.In(DBLogDomain).Wrapf(err, "failed to initialize DB Connection")
	}

	err = dbCon.MigrateSharedModels(ctx)
	if err != nil {
		return nil, oops.In(DBLogDomain).Wrapf(err, "failed to migrate shared models")
	}

	err = installTouchTrigger(ctx, dbCon)
	if err != nil {
		return nil, oops.In(DBLogDomain).Wrapf(err, "failed to install updated_at trigger function")
	}

	return dbCon, nil
}
