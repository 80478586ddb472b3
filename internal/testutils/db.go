package testutils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"

	"github.com/adk-labs/platform/internal/config"
	"github.com/adk-labs/platform/internal/db"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/internal/repo"
	"github.com/adk-labs/platform/utils/schemaname"
)

// TestConfig returns a full configuration with test defaults. The
// database port is filled in by StartPostgres.
func TestConfig(tb testing.TB) *config.Config {
	tb.Helper()

	return &config.Config{
		Database: config.Database{
			Host:     "localhost",
			User:     "postgres",
			Password: "secret",
			Name:     "platform_test",
			SSLMode:  "disable",
		},
		Auth: config.Auth{
			JWTSecret:        "test-jwt-secret",
			TokenPepper:      "test-token-pepper",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  7 * 24 * time.Hour,
			ResetTokenTTL:    time.Hour,
			LockoutThreshold: 3,
			LockoutWindow:    15 * time.Minute,
		},
		Provisioning: config.Provisioning{
			SchemaPrefix: schemaname.DefaultPrefix,
		},
	}
}

// NewTestDB connects to the shared test PostgreSQL, migrates the shared
// schema and provisions one tenant per slug. Slugs are prefixed with
// the test name so tests can share the container without colliding.
func NewTestDB(tb testing.TB, cfg *config.Config, slugs ...string) (*multitenancy.DB, []*model.Tenant) {
	tb.Helper()

	if cfg == nil {
		cfg = TestConfig(tb)
	}

	StartPostgres(tb, &cfg.Database)

	con, err := db.StartDB(tb.Context(), cfg)
	require.NoError(tb, err)

	tb.Cleanup(func() {
		sqlDB, _ := con.DB.DB()
		sqlDB.Close()
	})

	tenants := make([]*model.Tenant, 0, len(slugs))
	for _, slug := range slugs {
		tenants = append(tenants, NewTenant(tb, con, slug))
	}

	return con, tenants
}

// NewTenant provisions a fresh tenant schema for the test, clearing any
// leftovers from a previous run of the same test.
func NewTenant(tb testing.TB, con *multitenancy.DB, slug string) *model.Tenant {
	tb.Helper()

	slug = processNameForDB(tb.Name() + "_" + slug)
	schema := schemaname.Derive(slug, schemaname.DefaultPrefix)

	_ = con.Exec(fmt.Sprintf("DELETE FROM %s WHERE slug = '%s';", model.Tenant{}.TableName(), slug))
	_ = con.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE;", schema))

	tenant := &model.Tenant{
		TenantModel: multitenancy.TenantModel{
			SchemaName: schema,
			DomainURL:  slug + ".example.com",
		},
		ID:     uuid.NewString(),
		Name:   slug,
		Slug:   slug,
		Status: model.TenantStatusActive,
	}

	require.NoError(tb, db.CreateSchema(tb.Context(), con, tenant))

	return tenant
}

func CreateTestEntities(ctx context.Context, tb testing.TB, r repo.Repo, entities ...repo.Resource) {
	tb.Helper()

	for _, e := range entities {
		err := r.Create(ctx, e)
		assert.NoError(tb, err)
	}
}

func DeleteTestEntities(ctx context.Context, tb testing.TB, r repo.Repo, entities ...repo.Resource) {
	tb.Helper()

	for _, e := range entities {
		_, err := r.Delete(ctx, e, *repo.NewQuery())
		assert.NoError(tb, err)
	}
}

// MaxSlugLength keeps derived schema names inside the PostgreSQL
// identifier limit after the tenant prefix is applied.
const MaxSlugLength = 48

// processNameForDB turns tb.Name() output (TestA/SubtestB) into a value
// that survives both slug storage and schema derivation.
func processNameForDB(n string) string {
	name := strings.ToLower(n)
	name = strings.ReplaceAll(name, "/", "_")

	name = regexp.MustCompile(`[^a-z0-9_]+`).ReplaceAllString(name, "")
	if len(name) > MaxSlugLength {
		name = name[len(name)-MaxSlugLength:]
	}

	return name
}
