package sql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/log"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/internal/repo"
	"github.com/adk-labs/platform/internal/repo/violations"
	adkcontext "github.com/adk-labs/platform/utils/context"
)

const PublicSchema = "public"

var ErrUnsupportedOrderDirective = errors.New("unsupported order directive")

// ResourceRepository represents the repository for managing Resource data.
type ResourceRepository struct {
	db *multitenancy.DB
}

// NewRepository creates and returns a new instance of ResourceRepository.
func NewRepository(db *multitenancy.DB) *ResourceRepository {
	return &ResourceRepository{
		db: db,
	}
}

// WithTenant resolves the schema visibility for one operation and runs
// fn under it. Shared models address the public schema; tenant models
// require a tenant in the context, resolve it through the registry and
// run with the tenant schema first on the search path so tenant objects
// shadow shared ones of the same name. A missing tenant context fails
// closed; it never falls back to a default schema.
func (r *ResourceRepository) WithTenant(
	ctx context.Context,
	resource repo.Resource,
	fn func(tx *multitenancy.DB) error,
) error {
	var schemaName string

	if resource.IsSharedModel() {
		schemaName = PublicSchema
	} else {
		tenantID, err := adkcontext.ExtractTenantID(ctx)
		if err != nil {
			return errs.Wrap(repo.ErrWithTenant, err)
		}

		var tenant model.Tenant

		err = r.db.Where(repo.SlugField+" = ?", tenantID).First(&tenant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repo.ErrTenantNotFound
		} else if err != nil {
			return errs.Wrap(repo.ErrWithTenant, err)
		}

		if tenant.Status != model.TenantStatusActive && tenant.Status != model.TenantStatusProvisioning {
			return errs.Wrapf(repo.ErrTenantNotActive, tenant.Status.String())
		}

		schemaName = tenant.SchemaName
	}

	committer, ok := r.db.Statement.ConnPool.(gorm.TxCommitter)
	if committer != nil && ok {
		// Already inside a transaction; switch the search path in place
		// and restore it when done instead of opening a nested tx.
		reset, err := r.db.UseTenant(ctx, schemaName)

		defer func() {
			if reset != nil {
				resetErr := reset()
				if resetErr != nil {
					log.Error(ctx, "error resetting tenant search path", resetErr)
				}
			}
		}()

		if err != nil {
			return errs.Wrap(repo.ErrWithTenant, err)
		}

		return fn(r.db)
	}

	var err error

	txErr := r.db.WithTenant(
		ctx, schemaName, func(tx *multitenancy.DB) error {
			err = fn(tx)
			return err
		},
	)
	if txErr != nil {
		return errs.Wrap(repo.ErrTransaction, err)
	}

	return err
}

// Create stores a Resource in its partition.
func (r *ResourceRepository) Create(ctx context.Context, resource repo.Resource) error {
	return r.WithTenant(
		ctx, resource, func(tx *multitenancy.DB) error {
			err := tx.WithContext(ctx).Create(resource).Error
			if err != nil {
				log.Error(ctx, "error creating resource", err)

				if errors.Is(err, gorm.ErrDuplicatedKey) || violations.IsUniqueConstraint(err) {
					return errs.Wrap(repo.ErrUniqueConstraint, err)
				}

				return errs.Wrap(repo.ErrCreateResource, err)
			}

			return nil
		},
	)
}

// First fills the given Resource with the first match, if found.
func (r *ResourceRepository) First(
	ctx context.Context,
	resource repo.Resource,
	query repo.Query,
) (bool, error) {
	var res *gorm.DB

	err := r.WithTenant(
		ctx, resource, func(tx *multitenancy.DB) error {
			db, err := applyQuery(tx.WithContext(ctx).Model(resource), query)
			if err != nil {
				return err
			}

			res = db.First(resource)
			if res.Error != nil {
				if errors.Is(res.Error, gorm.ErrRecordNotFound) {
					return errs.Wrap(repo.ErrNotFound, res.Error)
				}

				log.Error(ctx, "error finding the resource", res.Error)

				return errs.Wrap(repo.ErrGetResource, res.Error)
			}

			return nil
		},
	)
	if err != nil {
		return false, err
	}

	return res.RowsAffected > 0, nil
}

// List retrieves records matching the query into result, which must be
// a pointer to a slice. It returns the total count before pagination.
func (r *ResourceRepository) List(
	ctx context.Context,
	resource repo.Resource,
	result any,
	query repo.Query,
) (int, error) {
	var count int64

	err := r.WithTenant(
		ctx, resource, func(tx *multitenancy.DB) error {
			db, err := applyQuery(tx.WithContext(ctx).Model(resource), query)
			if err != nil {
				return err
			}

			db = db.Count(&count)
			if db.Error != nil {
				return db.Error
			}

			for _, order := range query.OrderFields {
				switch order.Direction {
				case repo.Asc, repo.Desc:
					db = db.Order(order.Field + " " + string(order.Direction))
				default:
					return ErrUnsupportedOrderDirective
				}
			}

			res := applyPagination(db, query).Find(result)
			if res.Error != nil {
				return res.Error
			}

			return nil
		},
	)
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// Patch updates the matched rows with the non-zero fields of resource,
// plus any columns the query explicitly selected.
//
// It returns true if a record was patched.
func (r *ResourceRepository) Patch(
	ctx context.Context,
	resource repo.Resource,
	query repo.Query,
) (bool, error) {
	var res *gorm.DB

	err := r.WithTenant(
		ctx, resource, func(tx *multitenancy.DB) error {
			db := tx.WithContext(ctx).Model(resource)

			if len(query.UpdateFields) > 0 {
				db = db.Select(strings.Join(query.UpdateFields, ","))
			}

			db, err := applyQuery(db.Clauses(clause.Returning{}), query)
			if err != nil {
				return err
			}

			res = db.Updates(resource)

			err = res.Error
			if err != nil {
				log.Error(ctx, "error updating resource", err)

				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.Wrap(repo.ErrNotFound, err)
				}

				if violations.IsUniqueConstraint(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
					return errs.Wrap(repo.ErrUniqueConstraint, err)
				}

				return err
			}

			return nil
		},
	)
	if err != nil {
		return false, errs.Wrap(repo.ErrUpdateResource, err)
	}

	return res.RowsAffected > 0, nil
}

// Delete removes the matched rows.
//
// It returns true if a record was deleted, false when nothing matched.
// With an empty query it deletes by primary key.
func (r *ResourceRepository) Delete(
	ctx context.Context,
	resource repo.Resource,
	query repo.Query,
) (bool, error) {
	var result *gorm.DB

	err := r.WithTenant(
		ctx, resource, func(tx *multitenancy.DB) error {
			db, err := applyQuery(tx.WithContext(ctx).Clauses(clause.Returning{}), query)
			if err != nil {
				return err
			}

			result = db.Delete(resource)
			if result.Error != nil {
				log.Error(ctx, "error deleting resource", result.Error)
				return errs.Wrap(repo.ErrDeleteResource, result.Error)
			}

			return nil
		},
	)
	if err != nil {
		return false, err
	}

	return result.RowsAffected > 0, nil
}

// Transaction wraps a function inside a database transaction.
// If txFunc returns nil the transaction commits, otherwise it rolls
// back. Tenant resolution inside uses the same connection, so search
// path changes stay inside the transaction.
// Note: do not spawn goroutines that outlive txFunc.
func (r *ResourceRepository) Transaction(ctx context.Context, txFunc repo.TransactionFunc) error {
	err := r.db.Transaction(
		func(db *multitenancy.DB) error {
			errorChan := make(chan error)

			go func() {
				errorChan <- txFunc(
					ctx,
					NewRepository(db),
				)
			}()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case err := <-errorChan:
				return err
			}
		},
	)
	if err != nil {
		return errs.Wrap(repo.ErrTransaction, err)
	}

	return nil
}

// Migrate creates the tenant-model table set inside the given schema.
func (r *ResourceRepository) Migrate(ctx context.Context, schemaName string) error {
	err := r.db.MigrateTenantModels(ctx, schemaName)
	if err != nil {
		return errs.Wrap(repo.ErrMigratingTenant, err)
	}

	return nil
}

// applyQuery applies the query conditions to the database handle.
func applyQuery(db *gorm.DB, query repo.Query) (*gorm.DB, error) {
	for _, cond := range query.Conditions {
		switch cond.Operation {
		case repo.Equal, repo.NotEqual:
			db = db.Where(fmt.Sprintf("%s %s ?", cond.Field, cond.Operation), cond.Value)
		case repo.IsNull:
			db = db.Where(cond.Field + " IS NULL")
		default:
			return nil, fmt.Errorf("unsupported operation %q", cond.Operation)
		}
	}

	return db, nil
}

func applyPagination(db *gorm.DB, query repo.Query) *gorm.DB {
	if query.Limit <= 0 {
		query.Limit = repo.DefaultLimit
	}

	return db.Offset(query.Offset).Limit(query.Limit)
}
