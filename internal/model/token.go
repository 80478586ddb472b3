package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a tenant-scoped row holding the HMAC of an opaque
// refresh token value. The raw value leaves the system exactly once, at
// issue time. active -> revoked is terminal; expiry is time-based and
// never stored as a transition.
type RefreshToken struct {
	AutoTimeModel

	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TokenHash string     `gorm:"type:varchar(64);not null;unique"`
	ExpiresAt time.Time  `gorm:"not null"`
	RevokedAt *time.Time `gorm:""`
}

func (RefreshToken) TableName() string   { return "refresh_tokens" }
func (RefreshToken) IsSharedModel() bool { return false }

// Usable reports whether the token may still authorize a rotation.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// PasswordResetToken authorizes exactly one password change.
// active -> used is terminal.
type PasswordResetToken struct {
	AutoTimeModel

	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TokenHash string     `gorm:"type:varchar(64);not null;unique"`
	ExpiresAt time.Time  `gorm:"not null"`
	UsedAt    *time.Time `gorm:""`
}

func (PasswordResetToken) TableName() string   { return "password_reset_tokens" }
func (PasswordResetToken) IsSharedModel() bool { return false }

// Usable reports whether the token may still authorize a reset.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
