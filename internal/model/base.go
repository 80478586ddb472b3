package model

import (
	"time"

	"gorm.io/gorm"
)

// AutoTimeModel carries the timestamp pair every persisted row has.
// The database-side touch trigger is the authority for updated_at; the
// hooks below keep in-memory structs consistent with what the row will
// hold, truncated to the microsecond precision Postgres stores.
type AutoTimeModel struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (b *AutoTimeModel) BeforeCreate(_ *gorm.DB) error {
	now := stamp()

	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}

	b.UpdatedAt = now

	return nil
}

func (b *AutoTimeModel) BeforeUpdate(_ *gorm.DB) error {
	b.UpdatedAt = stamp()
	return nil
}

func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
