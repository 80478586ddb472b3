package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Workshop struct {
	AutoTimeModel

	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Published   bool      `gorm:"not null;default:false"`

	Exercises []Exercise `gorm:"foreignKey:WorkshopID;constraint:OnDelete:CASCADE"`
}

func (Workshop) TableName() string   { return "workshops" }
func (Workshop) IsSharedModel() bool { return false }

type Exercise struct {
	AutoTimeModel

	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkshopID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title      string          `gorm:"type:varchar(255);not null"`
	Position   int             `gorm:"not null;default:0"`
	Spec       json.RawMessage `gorm:"type:jsonb"`
}

func (Exercise) TableName() string   { return "exercises" }
func (Exercise) IsSharedModel() bool { return false }

type ProgressStatus string

const (
	ProgressStatusStarted   ProgressStatus = "started"
	ProgressStatusCompleted ProgressStatus = "completed"
)

type ExerciseProgress struct {
	AutoTimeModel

	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	User        *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExerciseID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Exercise    *Exercise      `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE"`
	Status      ProgressStatus `gorm:"type:varchar(50);not null;default:'started'"`
	Score       int            `gorm:"not null;default:0"`
	CompletedAt *time.Time     `gorm:""`
}

func (ExerciseProgress) TableName() string   { return "progress" }
func (ExerciseProgress) IsSharedModel() bool { return false }
