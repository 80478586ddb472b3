package model

import (
	"github.com/google/uuid"
)

// Bookmark references a shared library resource by id value. The search
// path makes the join transparent at query time; there is no physical
// foreign key across schemas.
type Bookmark struct {
	AutoTimeModel

	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_bookmarks_user_resource"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_resource"`
}

func (Bookmark) TableName() string   { return "bookmarks" }
func (Bookmark) IsSharedModel() bool { return false }

type ResourceProgress struct {
	AutoTimeModel

	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_resource_progress_user_resource"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_resource_progress_user_resource"`
	Percent    int       `gorm:"not null;default:0"`
}

func (ResourceProgress) TableName() string   { return "resource_progress" }
func (ResourceProgress) IsSharedModel() bool { return false }

type TemplateBookmark struct {
	AutoTimeModel

	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_template_bookmarks_user_template"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_template_bookmarks_user_template"`
}

func (TemplateBookmark) TableName() string   { return "template_bookmarks" }
func (TemplateBookmark) IsSharedModel() bool { return false }
