package manager

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"
	"github.com/google/uuid"

	"github.com/adk-labs/platform/internal/db"
	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/log"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/internal/repo"
	"github.com/adk-labs/platform/utils/schemaname"
)

// Tenant is the registry surface exposed to handlers and the CLI.
type Tenant interface {
	CreateTenant(ctx context.Context, tenant *model.Tenant) error
	GetTenantByID(ctx context.Context, id string) (*model.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	ListTenants(ctx context.Context, skip int, top int) ([]*model.Tenant, int, error)
	UpdateTenant(ctx context.Context, slug string, update TenantUpdate) (*model.Tenant, error)
	DeprovisionTenant(ctx context.Context, slug string) error
}

// TenantManager owns the tenant registry and is the only code path that
// provisions or drops tenant schemas.
type TenantManager struct {
	repo   repo.Repo
	db     *multitenancy.DB
	prefix string
}

// TenantUpdate carries the mutable registry fields. Nil pointers leave
// the stored value untouched. Slug and schema name are immutable.
type TenantUpdate struct {
	Name     *string
	Tier     *string
	Status   *model.TenantStatus
	Settings json.RawMessage
}

func NewTenantManager(mrepo repo.Repo, mdb *multitenancy.DB, schemaPrefix string) *TenantManager {
	if schemaPrefix == "" {
		schemaPrefix = schemaname.DefaultPrefix
	}

	return &TenantManager{
		repo:   mrepo,
		db:     mdb,
		prefix: schemaPrefix,
	}
}

// CreateTenant registers a tenant and provisions its schema. The schema
// name is derived from the slug exactly once here and stored on the
// registry row; nothing downstream ever re-derives it. The registry row,
// the schema, its tables and the update triggers are created in a single
// transaction, so a failed provisioning leaves no trace.
func (m *TenantManager) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	tenant.Status = model.TenantStatusProvisioning

	err := tenant.Validate()
	if err != nil {
		return errs.Wrap(errs.ErrValidation, errs.Wrap(ErrValidatingTenant, err))
	}

	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}

	tenant.SchemaName = schemaname.Derive(tenant.Slug, m.prefix)

	if tenant.DomainURL == "" {
		tenant.DomainURL = tenant.Slug + ".adk-labs.io"
	}

	err = schemaname.Validate(tenant.SchemaName)
	if err != nil {
		return errs.Wrap(errs.ErrValidation, errs.Wrap(ErrValidatingTenant, err))
	}

	taken, err := m.slugTaken(ctx, tenant.Slug)
	if err != nil {
		return errs.Wrap(ErrCreatingTenant, err)
	}

	if taken {
		return errs.Wrap(errs.ErrValidation, ErrDuplicateSlug)
	}

	err = db.CreateSchema(ctx, m.db, tenant)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateTenant) || errors.Is(err, db.ErrSchemaExists) {
			return errs.Wrap(errs.ErrValidation, errs.Wrap(ErrDuplicateSlug, err))
		}

		return errs.Wrap(ErrCreatingTenant, err)
	}

	err = m.activate(ctx, tenant)
	if err != nil {
		return err
	}

	log.Info(ctx, "Tenant provisioned",
		slog.String("slug", tenant.Slug),
		slog.String("schema", tenant.SchemaName),
	)

	return nil
}

func (m *TenantManager) slugTaken(ctx context.Context, slug string) (bool, error) {
	existing := &model.Tenant{}

	found, err := m.repo.First(ctx, existing, *repo.NewQuery().Where(repo.SlugField, slug))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	return found, nil
}

// activate moves a freshly provisioned tenant into service. Provisioning
// already committed, so a failure here leaves the tenant in status
// provisioning where access is still permitted and the transition can be
// retried administratively.
func (m *TenantManager) activate(ctx context.Context, tenant *model.Tenant) error {
	err := tenant.TransitionStatus(model.TenantStatusActive)
	if err != nil {
		return errs.Wrap(ErrActivatingTenant, err)
	}

	query := repo.NewQuery().
		Where(repo.IDField, tenant.ID).
		Select(repo.StatusField)

	_, err = m.repo.Patch(ctx, tenant, *query)
	if err != nil {
		return errs.Wrap(ErrActivatingTenant, err)
	}

	return nil
}

func (m *TenantManager) GetTenantByID(ctx context.Context, id string) (*model.Tenant, error) {
	return m.getTenant(ctx, repo.IDField, id)
}

func (m *TenantManager) GetTenantBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	return m.getTenant(ctx, repo.SlugField, slug)
}

func (m *TenantManager) getTenant(ctx context.Context, field, value string) (*model.Tenant, error) {
	tenant := &model.Tenant{}

	found, err := m.repo.First(ctx, tenant, *repo.NewQuery().Where(field, value))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, errs.Wrap(ErrGettingTenant, err)
	}

	if !found {
		return nil, errs.Wrap(errs.ErrNotFound, ErrGettingTenant)
	}

	return tenant, nil
}

func (m *TenantManager) ListTenants(ctx context.Context, skip int, top int) ([]*model.Tenant, int, error) {
	var tenants []*model.Tenant

	query := repo.NewQuery().
		OrderBy(repo.SlugField, repo.Asc).
		SetLimit(top).
		SetOffset(skip)

	count, err := m.repo.List(ctx, model.Tenant{}, &tenants, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListingTenants, err)
	}

	return tenants, count, nil
}

// UpdateTenant patches the mutable registry fields. Status changes go
// through the lifecycle state machine, so illegal jumps (for example
// deleted back to active) are rejected before anything is written.
func (m *TenantManager) UpdateTenant(ctx context.Context, slug string, update TenantUpdate) (*model.Tenant, error) {
	tenant, err := m.getTenant(ctx, repo.SlugField, slug)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, 4)

	if update.Name != nil {
		tenant.Name = *update.Name
		fields = append(fields, "name")
	}

	if update.Tier != nil {
		tenant.Tier = *update.Tier
		fields = append(fields, "tier")
	}

	if update.Settings != nil {
		tenant.Settings = update.Settings
		fields = append(fields, "settings")
	}

	if update.Status != nil {
		err = tenant.TransitionStatus(*update.Status)
		if err != nil {
			return nil, errs.Wrap(errs.ErrValidation, err)
		}

		fields = append(fields, repo.StatusField)
	}

	if len(fields) == 0 {
		return tenant, nil
	}

	query := repo.NewQuery().
		Where(repo.SlugField, slug).
		Select(fields...)

	found, err := m.repo.Patch(ctx, tenant, *query)
	if err != nil {
		return nil, errs.Wrap(ErrUpdatingTenant, err)
	}

	if !found {
		return nil, errs.Wrap(errs.ErrNotFound, ErrUpdatingTenant)
	}

	return tenant, nil
}

// DeprovisionTenant physically drops the tenant schema and removes the
// registry row. The tenant must already have been transitioned to
// deleted; the drop is irreversible and never happens as a side effect
// of a status change.
func (m *TenantManager) DeprovisionTenant(ctx context.Context, slug string) error {
	tenant, err := m.getTenant(ctx, repo.SlugField, slug)
	if err != nil {
		return err
	}

	if tenant.Status != model.TenantStatusDeleted {
		return errs.Wrap(errs.ErrValidation, ErrTenantNotDeleted)
	}

	err = db.DropSchema(ctx, m.db, tenant.SchemaName)
	if err != nil {
		return errs.Wrap(ErrDeprovisioning, err)
	}

	_, err = m.repo.Delete(ctx, &model.Tenant{}, *repo.NewQuery().Where(repo.SlugField, slug))
	if err != nil {
		return errs.Wrap(ErrDeprovisioning, err)
	}

	log.Info(ctx, "Tenant deprovisioned", slog.String("slug", slug))

	return nil
}
