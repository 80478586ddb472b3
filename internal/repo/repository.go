package repo

import (
	"context"
	"errors"
)

// TransactionFunc is func signature for Transaction.
type TransactionFunc func(context.Context, Repo) error

// Repo defines an interface for Repository operations.
type Repo interface {
	Create(ctx context.Context, resource Resource) error
	First(ctx context.Context, resource Resource, query Query) (bool, error)
	List(ctx context.Context, resource Resource, result any, query Query) (int, error)
	Patch(ctx context.Context, resource Resource, query Query) (bool, error)
	Delete(ctx context.Context, resource Resource, query Query) (bool, error)
	Transaction(ctx context.Context, txFunc TransactionFunc) error
	Migrate(ctx context.Context, schemaName string) error
}

// Resource defines the interface every persisted model implements. The
// IsSharedModel split is what decides the schema visibility of each
// operation.
type Resource interface {
	IsSharedModel() bool
	TableName() string
}

const DefaultLimit = 100

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUniqueConstraint = errors.New("unique constraint violation")
	ErrCreateResource   = errors.New("failed to create resource")
	ErrUpdateResource   = errors.New("failed to update resource")
	ErrDeleteResource   = errors.New("failed to delete resource")
	ErrGetResource      = errors.New("failed to get resource")
	ErrTransaction      = errors.New("failed to execute transaction")
	ErrWithTenant       = errors.New("failed to use tenant from context")
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrTenantNotActive  = errors.New("tenant is not active")
	ErrMigratingTenant  = errors.New("failed migrating tenant models")
)
