package db_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"

	"github.com/adk-labs/platform/internal/db"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/internal/testutils"
)

func TestCreateSchema(t *testing.T) {
	con, tenants := testutils.NewTestDB(t, nil, "a")
	tenant := tenants[0]

	t.Run("Should provision registry row and schema together", func(t *testing.T) {
		var count int64
		err := con.Model(&model.Tenant{}).Where("slug = ?", tenant.Slug).Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		assert.True(t, schemaExists(t, con, tenant.SchemaName))
		assert.True(t, tableExists(t, con, tenant.SchemaName, model.User{}.TableName()))
		assert.True(t, tableExists(t, con, tenant.SchemaName, model.RefreshToken{}.TableName()))
		assert.True(t, tableExists(t, con, tenant.SchemaName, model.Workshop{}.TableName()))
	})

	t.Run("Should refuse to provision twice", func(t *testing.T) {
		again := &model.Tenant{
			TenantModel: multitenancy.TenantModel{
				SchemaName: tenant.SchemaName,
				DomainURL:  tenant.DomainURL,
			},
			ID:     uuid.NewString(),
			Name:   tenant.Name,
			Slug:   tenant.Slug,
			Status: model.TenantStatusActive,
		}

		err := db.CreateSchema(t.Context(), con, again)
		assert.ErrorIs(t, err, db.ErrSchemaExists)
	})

	t.Run("Should reject unsafe schema name", func(t *testing.T) {
		hostile := &model.Tenant{
			TenantModel: multitenancy.TenantModel{
				SchemaName: `adk_tenant_x"; DROP SCHEMA public CASCADE; --`,
				DomainURL:  "hostile.example.com",
			},
			ID:     uuid.NewString(),
			Name:   "hostile",
			Slug:   "hostile",
			Status: model.TenantStatusActive,
		}

		err := db.CreateSchema(t.Context(), con, hostile)
		assert.ErrorIs(t, err, db.ErrValidatingSchema)
	})

	t.Run("Should leave nothing behind on failed provisioning", func(t *testing.T) {
		// Duplicate slug under a fresh schema name fails the insert; the
		// transaction must roll the schema back too.
		clash := &model.Tenant{
			TenantModel: multitenancy.TenantModel{
				SchemaName: tenant.SchemaName + "_clash",
				DomainURL:  "clash.example.com",
			},
			ID:     uuid.NewString(),
			Name:   tenant.Name,
			Slug:   tenant.Slug,
			Status: model.TenantStatusActive,
		}

		err := db.CreateSchema(t.Context(), con, clash)
		assert.ErrorIs(t, err, db.ErrDuplicateTenant)
		assert.False(t, schemaExists(t, con, clash.SchemaName))
	})
}

func TestDropSchema(t *testing.T) {
	con, tenants := testutils.NewTestDB(t, nil, "a")
	tenant := tenants[0]

	t.Run("Should drop provisioned schema", func(t *testing.T) {
		err := db.DropSchema(t.Context(), con, tenant.SchemaName)
		assert.NoError(t, err)
		assert.False(t, schemaExists(t, con, tenant.SchemaName))
	})

	t.Run("Should ignore missing schema", func(t *testing.T) {
		err := db.DropSchema(t.Context(), con, tenant.SchemaName)
		assert.NoError(t, err)
	})

	t.Run("Should reject unsafe schema name", func(t *testing.T) {
		err := db.DropSchema(t.Context(), con, `public"; --`)
		assert.ErrorIs(t, err, db.ErrValidatingSchema)
	})
}

func TestTouchTrigger(t *testing.T) {
	con, tenants := testutils.NewTestDB(t, nil, "a")
	tenant := tenants[0]

	id := uuid.New()
	created := time.Now().UTC().Add(-time.Hour)

	// Raw SQL bypasses the model hooks, so only the trigger can move
	// updated_at forward.
	table := fmt.Sprintf("%q.%q", tenant.SchemaName, model.Workshop{}.TableName())

	err := con.Exec(
		fmt.Sprintf(`INSERT INTO %s (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`, table),
		id, "trigger", created, created,
	).Error
	require.NoError(t, err)

	err = con.Exec(fmt.Sprintf(`UPDATE %s SET title = ? WHERE id = ?`, table), "touched", id).Error
	require.NoError(t, err)

	var updated time.Time

	err = con.Raw(fmt.Sprintf(`SELECT updated_at FROM %s WHERE id = ?`, table), id).Scan(&updated).Error
	require.NoError(t, err)
	assert.True(t, updated.After(created))
}

func schemaExists(t *testing.T, con *multitenancy.DB, schema string) bool {
	t.Helper()

	var count int64
	err := con.Raw(
		`SELECT count(*) FROM information_schema.schemata WHERE schema_name = ?`, schema,
	).Scan(&count).Error
	require.NoError(t, err)

	return count > 0
}

func tableExists(t *testing.T, con *multitenancy.DB, schema, table string) bool {
	t.Helper()

	var count int64
	err := con.Raw(
		`SELECT count(*) FROM information_schema.tables WHERE table_schema = ? AND table_name = ?`,
		schema, table,
	).Scan(&count).Error
	require.NoError(t, err)

	return count > 0
}
