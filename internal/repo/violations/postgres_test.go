package violations_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/adk-labs/platform/internal/repo/violations"
)

var errNotPostgres = errors.New("not postgres")

func TestIsUniqueConstraint(t *testing.T) {
	t.Run("should return false when error is not a postgres error", func(t *testing.T) {
		require.False(t, violations.IsUniqueConstraint(errNotPostgres))
	})

	t.Run("should return true for a unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: violations.PgUniqueErrCode}

		require.True(t, violations.IsUniqueConstraint(pgErr))
	})

	t.Run("should return false for other postgres errors", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}

		require.False(t, violations.IsUniqueConstraint(pgErr))
	})
}
