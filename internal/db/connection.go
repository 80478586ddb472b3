package db

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"

	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/db/dialect"
	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/model"
)

var (
	ErrStartingDBCon = errors.New("error starting db connection")
	ErrDBResolver    = errors.New("error starting db resolver")
)

// StartDBConnection opens the DB connection described by conf, registers
// the shared and tenant model sets with the multitenancy driver, and
// optionally attaches read replicas.
func StartDBConnection(
	ctx context.Context,
	conf config.Database,
	replicas []config.Database,
) (*multitenancy.DB, error) {
	dialector := dialect.NewFrom(conf.DSN())

	db, err := retry.DoWithData(func() (*multitenancy.DB, error) {
		return multitenancy.Open(dialector, &gorm.Config{
			TranslateError: true,
		})
	}, retry.Context(ctx))
	if err != nil {
		return nil, errs.Wrap(ErrStartingDBCon, err)
	}

	db = db.WithContext(ctx)

	err = registerModels(ctx, db)
	if err != nil {
		return nil, err
	}

	if len(replicas) == 0 {
		return db, nil
	}

	replicaDialectors := make([]gorm.Dialector, 0, len(replicas))
	for _, r := range replicas {
		replicaDialectors = append(replicaDialectors, dialect.NewFrom(r.DSN()))
	}

	err = db.Use(dbresolver.Register(dbresolver.Config{
		Sources:  []gorm.Dialector{dialector},
		Replicas: replicaDialectors,
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return nil, errs.Wrap(ErrDBResolver, err)
	}

	return db, nil
}

// registerModels tells the multitenancy driver which models are shared
// and which get one copy per tenant schema. The split is decided by
// each model's IsSharedModel.
func registerModels(ctx context.Context, db *multitenancy.DB) error {
	return db.RegisterModels(
		ctx,
		&model.Tenant{},
		&model.LibraryResource{},
		&model.Guide{},
		&model.NewsItem{},
		&model.Announcement{},
		&model.AgentTemplate{},
		&model.User{},
		&model.RefreshToken{},
		&model.PasswordResetToken{},
		&model.Workshop{},
		&model.Exercise{},
		&model.ExerciseProgress{},
		&model.Agent{},
		&model.Bookmark{},
		&model.ResourceProgress{},
		&model.TemplateBookmark{},
	)
}
