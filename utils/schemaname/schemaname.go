package schemaname

import (
	"errors"
	"strings"

	"github.com/bartventer/gorm-multitenancy/v8/pkg/namespace"

	"github.com/adk-labs/platform/internal/errs"
)

const (
	// DefaultPrefix is prepended to every derived tenant schema name.
	DefaultPrefix = "adk_tenant_"

	MinSchemaNameLength = 3

	// Postgresql allows max 63 bytes for schema name. Derived names only
	// contain ASCII characters, so bytes == characters here.
	MaxSchemaNameLength = 63
)

var (
	ErrSchemaNameLength  = errors.New("schema name length must be between 3 and 63 characters")
	ErrUnsafeSchemaName  = errors.New("schema name contains unsafe characters")
	ErrEmptySchemaPrefix = errors.New("schema prefix must not be empty")
)

// Derive maps a tenant identifier to a schema name by replacing every
// character outside [A-Za-z0-9_] with an underscore and prepending the
// prefix. It is total and stable: the same input always yields the same
// output, and the output is never empty because the prefix is fixed.
//
// Derive is a sanitizer, not a hash. Two identifiers differing only in
// punctuation collide; the unique constraint on tenants.schema_name is
// the safety net that makes the second registration fail.
func Derive(tenantID, prefix string) string {
	var b strings.Builder

	b.Grow(len(prefix) + len(tenantID))
	b.WriteString(prefix)

	for _, r := range tenantID {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return b.String()
}

// Validate is the second defense layer applied immediately before a
// schema name is interpolated into DDL text. Schema identifiers cannot
// be bind parameters, so both the deriver and this check must hold.
func Validate(schema string) error {
	err := namespace.Validate(schema)
	if err != nil {
		return errs.Wrap(ErrUnsafeSchemaName, err)
	}

	if len(schema) < MinSchemaNameLength || len(schema) > MaxSchemaNameLength {
		return ErrSchemaNameLength
	}

	return nil
}
