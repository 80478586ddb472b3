package model

import (
	"encoding/json"

	multitenancy "github.com/bartventer/gorm-multitenancy/v8"
)

// Tenant is the registry row for one isolated customer organization.
// It lives in the shared schema; the SchemaName it carries is derived
// exactly once at creation and never recomputed.
type Tenant struct {
	multitenancy.TenantModel
	AutoTimeModel

	ID       string          `gorm:"type:varchar(255);not null;unique"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Slug     string          `gorm:"type:varchar(255);not null;unique"`
	Status   TenantStatus    `gorm:"type:varchar(50);not null"`
	Tier     string          `gorm:"type:varchar(50);not null;default:'starter'"`
	Settings json.RawMessage `gorm:"type:jsonb"`
}

func (t Tenant) TableName() string   { return "public.tenants" }
func (t Tenant) IsSharedModel() bool { return true }

func (t *Tenant) Validate() error {
	if t.Slug == "" {
		return ErrEmptyTenantSlug
	}

	return t.Status.Validate()
}
