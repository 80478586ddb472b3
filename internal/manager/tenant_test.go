package manager_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/manager"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/internal/repo"
	"github.com/adk-labs/platform/internal/repo/sql"
	"github.com/adk-labs/platform/internal/testutils"
	"github.com/adk-labs/platform/utils/schemaname"
)

func SetupTenantManager(t *testing.T) (*manager.TenantManager, repo.Repo, *multitenancy.DB) {
	t.Helper()

	db, _ := testutils.NewTestDB(t, nil)
	r := sql.NewRepository(db)

	return manager.NewTenantManager(r, db, schemaname.DefaultPrefix), r, db
}

// uniqueSlug keeps tests sharing one database out of each other's way.
func uniqueSlug(base string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return base + suffix
}

func schemaExists(t *testing.T, db *multitenancy.DB, schema string) bool {
	t.Helper()

	var count int64

	err := db.Raw(
		"SELECT COUNT(*) FROM information_schema.schemata WHERE schema_name = ?", schema,
	).Scan(&count).Error
	require.NoError(t, err)

	return count > 0
}

func TestCreateTenant(t *testing.T) {
	m, _, db := SetupTenantManager(t)
	ctx := t.Context()

	t.Run("provisions schema and activates", func(t *testing.T) {
		slug := uniqueSlug("acme")
		tenant := &model.Tenant{Name: "Acme Corp", Slug: slug, Status: model.TenantStatusProvisioning}

		err := m.CreateTenant(ctx, tenant)
		require.NoError(t, err)

		assert.Equal(t, schemaname.DefaultPrefix+slug, tenant.SchemaName)
		assert.Equal(t, model.TenantStatusActive, tenant.Status)
		assert.NotEmpty(t, tenant.ID)
		assert.True(t, schemaExists(t, db, tenant.SchemaName))

		stored, err := m.GetTenantBySlug(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, model.TenantStatusActive, stored.Status)
		assert.Equal(t, tenant.SchemaName, stored.SchemaName)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		slug := uniqueSlug("dup")

		err := m.CreateTenant(ctx, &model.Tenant{Name: "First", Slug: slug, Status: model.TenantStatusProvisioning})
		require.NoError(t, err)

		err = m.CreateTenant(ctx, &model.Tenant{Name: "Second", Slug: slug, Status: model.TenantStatusProvisioning})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, manager.ErrDuplicateSlug)
	})

	t.Run("rejects empty slug", func(t *testing.T) {
		err := m.CreateTenant(ctx, &model.Tenant{Name: "No Slug", Status: model.TenantStatusProvisioning})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("sanitizes hostile slug into safe schema name", func(t *testing.T) {
		slug := uniqueSlug("evil.drop") // dots must not survive derivation
		tenant := &model.Tenant{Name: "Evil", Slug: slug, Status: model.TenantStatusProvisioning}

		err := m.CreateTenant(ctx, tenant)
		require.NoError(t, err)

		assert.NotContains(t, tenant.SchemaName, ".")
		assert.True(t, schemaExists(t, db, tenant.SchemaName))
	})
}

func TestUpdateTenant(t *testing.T) {
	m, _, _ := SetupTenantManager(t)
	ctx := t.Context()

	slug := uniqueSlug("lifecycle")
	require.NoError(t, m.CreateTenant(ctx, &model.Tenant{Name: "Lifecycle", Slug: slug}))

	t.Run("patches name and tier", func(t *testing.T) {
		name := "Lifecycle Renamed"
		tier := "enterprise"

		updated, err := m.UpdateTenant(ctx, slug, manager.TenantUpdate{Name: &name, Tier: &tier})
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)
		assert.Equal(t, tier, updated.Tier)
	})

	t.Run("walks the status lifecycle", func(t *testing.T) {
		suspended := model.TenantStatusSuspended

		updated, err := m.UpdateTenant(ctx, slug, manager.TenantUpdate{Status: &suspended})
		require.NoError(t, err)
		assert.Equal(t, model.TenantStatusSuspended, updated.Status)

		active := model.TenantStatusActive
		updated, err = m.UpdateTenant(ctx, slug, manager.TenantUpdate{Status: &active})
		require.NoError(t, err)
		assert.Equal(t, model.TenantStatusActive, updated.Status)
	})

	t.Run("rejects illegal transition", func(t *testing.T) {
		deleted := model.TenantStatusDeleted
		_, err := m.UpdateTenant(ctx, slug, manager.TenantUpdate{Status: &deleted})
		require.NoError(t, err)

		active := model.TenantStatusActive
		_, err = m.UpdateTenant(ctx, slug, manager.TenantUpdate{Status: &active})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		name := "nope"
		_, err := m.UpdateTenant(ctx, uniqueSlug("missing"), manager.TenantUpdate{Name: &name})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestListTenants(t *testing.T) {
	m, _, _ := SetupTenantManager(t)
	ctx := t.Context()

	slugs := []string{uniqueSlug("lista"), uniqueSlug("listb")}
	for _, slug := range slugs {
		require.NoError(t, m.CreateTenant(ctx, &model.Tenant{Name: slug, Slug: slug}))
	}

	tenants, count, err := m.ListTenants(ctx, 0, 1000)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, len(slugs))

	found := map[string]bool{}
	for _, tenant := range tenants {
		found[tenant.Slug] = true
	}

	for _, slug := range slugs {
		assert.True(t, found[slug], fmt.Sprintf("expected %s in listing", slug))
	}
}

func TestDeprovisionTenant(t *testing.T) {
	m, _, db := SetupTenantManager(t)
	ctx := t.Context()

	slug := uniqueSlug("gone")
	tenant := &model.Tenant{Name: "Gone", Slug: slug}
	require.NoError(t, m.CreateTenant(ctx, tenant))

	t.Run("refuses while tenant is live", func(t *testing.T) {
		err := m.DeprovisionTenant(ctx, slug)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.ErrorIs(t, err, manager.ErrTenantNotDeleted)
		assert.True(t, schemaExists(t, db, tenant.SchemaName))
	})

	t.Run("drops schema and registry row once deleted", func(t *testing.T) {
		deleted := model.TenantStatusDeleted
		_, err := m.UpdateTenant(ctx, slug, manager.TenantUpdate{Status: &deleted})
		require.NoError(t, err)

		err = m.DeprovisionTenant(ctx, slug)
		require.NoError(t, err)

		assert.False(t, schemaExists(t, db, tenant.SchemaName))

		_, err = m.GetTenantBySlug(ctx, slug)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("deprovisioning unknown tenant is not found", func(t *testing.T) {
		err := m.DeprovisionTenant(ctx, uniqueSlug("missing"))
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
