package db

import (
	"context"
	"errors"
	"fmt"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"
	"gorm.io/gorm"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/internal/log"
	"github.com/adk-labs/platform/internal/model"
	"github.com/adk-labs/platform/utils/schemaname"
)

var (
	ErrValidatingSchema      = errors.New("error validating schema name")
	ErrSchemaExists          = errors.New("schema already provisioned")
	ErrCreatingTenant        = errors.New("error creating tenant")
	ErrDuplicateTenant       = errors.New("tenant with the same slug or schema already registered")
	ErrMigratingTenantModels = errors.New("error migrating tenant models")
	ErrInstallingTriggers    = errors.New("error installing updated_at triggers")
	ErrDroppingSchema        = errors.New("error dropping tenant schema")
)

// tenantTables is the full tenant-scoped table set; every provisioned
// schema carries exactly these tables and each gets the touch trigger.
var tenantTables = []string{
	model.User{}.TableName(),
	model.RefreshToken{}.TableName(),
	model.PasswordResetToken{}.TableName(),
	model.Workshop{}.TableName(),
	model.Exercise{}.TableName(),
	model.ExerciseProgress{}.TableName(),
	model.Agent{}.TableName(),
	model.Bookmark{}.TableName(),
	model.ResourceProgress{}.TableName(),
	model.TemplateBookmark{}.TableName(),
}

// touchFunctionDDL creates the shared trigger function once in the
// public schema; every tenant schema reuses it.
const touchFunctionDDL = `
CREATE OR REPLACE FUNCTION public.touch_updated_at() RETURNS trigger AS $$
BEGIN
	NEW.updated_at = now();
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`

func installTouchTrigger(ctx context.Context, db *multitenancy.DB) error {
	return db.WithContext(ctx).Exec(touchFunctionDDL).Error
}

// CreateSchema provisions the tenant: it inserts the registry row and
// creates the schema with the full table set and triggers, all inside
// one transaction. Either everything exists afterwards or nothing does;
// concurrent readers never observe a half-provisioned tenant.
//
// Schema names cannot be bind parameters, so the name is re-validated
// here even though the deriver already sanitized it.
func CreateSchema(ctx context.Context, db *multitenancy.DB, tenant *model.Tenant) error {
	err := schemaname.Validate(tenant.SchemaName)
	if err != nil {
		return errs.Wrap(ErrValidatingSchema, err)
	}

	return db.Transaction(func(tx *multitenancy.DB) error {
		exists, err := schemaExists(tx, tenant.SchemaName)
		if err != nil {
			return errs.Wrap(ErrCreatingTenant, err)
		}

		if exists {
			return errs.Wrapf(ErrSchemaExists, tenant.SchemaName)
		}

		log.Info(ctx, "Creating tenant schema")

		err = tx.WithContext(ctx).Create(tenant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Wrap(ErrDuplicateTenant, err)
			}

			return errs.Wrap(ErrCreatingTenant, err)
		}

		err = tx.MigrateTenantModels(ctx, tenant.SchemaName)
		if err != nil {
			return errs.Wrap(ErrMigratingTenantModels, err)
		}

		return attachTouchTriggers(ctx, tx, tenant.SchemaName)
	})
}

// attachTouchTriggers wires the shared touch function to every table of
// the freshly created schema. The DDL is a fixed template; the schema
// name was validated before it is interpolated.
func attachTouchTriggers(ctx context.Context, tx *multitenancy.DB, schema string) error {
	for _, table := range tenantTables {
		ddl := fmt.Sprintf(
			`CREATE TRIGGER touch_updated_at BEFORE UPDATE ON %q.%q
				FOR EACH ROW EXECUTE FUNCTION public.touch_updated_at()`,
			schema, table,
		)

		err := tx.WithContext(ctx).Exec(ddl).Error
		if err != nil {
			return errs.Wrap(ErrInstallingTriggers, err)
		}
	}

	return nil
}

// DropSchema irreversibly drops the tenant schema and everything in it.
// Dropping a schema that was never provisioned is a safe no-op. Callers
// gate this behind explicit administrative confirmation.
func DropSchema(ctx context.Context, db *multitenancy.DB, schema string) error {
	err := schemaname.Validate(schema)
	if err != nil {
		return errs.Wrap(ErrValidatingSchema, err)
	}

	log.Warn(ctx, "Dropping tenant schema")

	err = db.WithContext(ctx).Exec(fmt.Sprintf(`DROP SCHEMA IF EXISTS %q CASCADE`, schema)).Error
	if err != nil {
		return errs.Wrap(ErrDroppingSchema, err)
	}

	return nil
}

func schemaExists(tx *multitenancy.DB, schema string) (bool, error) {
	var count int64

	err := tx.Raw(
		`SELECT count(*) FROM information_schema.schemata WHERE schema_name = ?`, schema,
	).Scan(&count).Error

	return count > 0, err
}
