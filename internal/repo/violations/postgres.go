package violations

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PgUniqueErrCode is the PostgreSQL unique_violation error code,
// see https://www.postgresql.org/docs/14/errcodes-appendix.html
const PgUniqueErrCode = "23505"

// IsUniqueConstraint checks if the error is a PostgreSQL unique constraint violation
func IsUniqueConstraint(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == PgUniqueErrCode
}
