package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Agent is a tenant-private AI agent instance. TemplateSlug names a
// shared AgentTemplate by value only; tenant schemas never hold foreign
// keys into another schema.
type Agent struct {
	AutoTimeModel

	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	User         *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name         string          `gorm:"type:varchar(255);not null"`
	TemplateSlug string          `gorm:"type:varchar(255);not null;default:''"`
	Config       json.RawMessage `gorm:"type:jsonb"`
}

func (Agent) TableName() string   { return "agents" }
func (Agent) IsSharedModel() bool { return false }
