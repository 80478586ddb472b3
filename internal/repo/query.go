package repo

// Query field names shared across call sites. Keeping them here avoids
// scattering raw column strings through the managers.
const (
	IDField        = "id"
	SlugField      = "slug"
	EmailField     = "email"
	UserIDField    = "user_id"
	TokenHashField = "token_hash"
	StatusField    = "status"
	RevokedAtField = "revoked_at"
	UsedAtField    = "used_at"

	PasswordHashField        = "password_hash"
	FailedLoginAttemptsField = "failed_login_attempts"
	LockedUntilField         = "locked_until"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Operation string

const (
	Equal    Operation = "="
	NotEqual Operation = "<>"
	IsNull   Operation = "IS NULL"
)

type Condition struct {
	Field     string
	Operation Operation
	Value     any
}

type OrderField struct {
	Field     string
	Direction Direction
}

// Query describes filtering, ordering and pagination for repository
// operations. Zero value selects everything up to DefaultLimit.
type Query struct {
	Conditions   []Condition
	OrderFields  []OrderField
	UpdateFields []string
	Limit        int
	Offset       int
}

func NewQuery() *Query {
	return &Query{}
}

func (q *Query) Where(field string, value any) *Query {
	q.Conditions = append(q.Conditions, Condition{Field: field, Operation: Equal, Value: value})
	return q
}

func (q *Query) WhereNull(field string) *Query {
	q.Conditions = append(q.Conditions, Condition{Field: field, Operation: IsNull})
	return q
}

func (q *Query) OrderBy(field string, direction Direction) *Query {
	q.OrderFields = append(q.OrderFields, OrderField{Field: field, Direction: direction})
	return q
}

// Select limits Patch to the given columns so zero values update too.
func (q *Query) Select(fields ...string) *Query {
	q.UpdateFields = append(q.UpdateFields, fields...)
	return q
}

func (q *Query) SetLimit(limit int) *Query {
	q.Limit = limit
	return q
}

func (q *Query) SetOffset(offset int) *Query {
	q.Offset = offset
	return q
}
