package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleInstructor UserRole = "instructor"
	UserRoleMember     UserRole = "member"
)

// User lives in the tenant schema. Email uniqueness is therefore per
// tenant: the same address may exist under two different tenants.
type User struct {
	AutoTimeModel

	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;unique"`
	FullName     string    `gorm:"type:varchar(255);not null;default:''"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         UserRole  `gorm:"type:varchar(50);not null;default:'member'"`
	Active       bool      `gorm:"not null;default:true"`

	// Lockout counters. FailedLoginAttempts is monotonic within a lockout
	// window and resets only on successful authentication or password
	// reset.
	FailedLoginAttempts int        `gorm:"not null;default:0"`
	LockedUntil         *time.Time `gorm:""`
}

func (User) TableName() string   { return "users" }
func (User) IsSharedModel() bool { return false }

// Locked reports whether the account lockout is still in effect.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
