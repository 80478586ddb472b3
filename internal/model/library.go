package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// contentPolicy strips unsafe markup from shared content bodies before
// they are persisted. Shared rows are rendered to every tenant, so they
// get the strictest treatment.
var contentPolicy = bluemonday.UGCPolicy()

// LibraryResource is platform-wide reference content, visible to all
// tenants and never duplicated per schema.
type LibraryResource struct {
	AutoTimeModel

	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug  string    `gorm:"type:varchar(255);not null;unique"`
	Title string    `gorm:"type:varchar(255);not null"`
	Kind  string    `gorm:"type:varchar(50);not null;default:'article'"`
	Body  string    `gorm:"type:text;not null;default:''"`
	URL   string    `gorm:"type:varchar(2048);not null;default:''"`
}

func (LibraryResource) TableName() string   { return "public.library_resources" }
func (LibraryResource) IsSharedModel() bool { return true }

func (r *LibraryResource) BeforeSave(_ *gorm.DB) error {
	r.Body = contentPolicy.Sanitize(r.Body)
	return nil
}

type Guide struct {
	AutoTimeModel

	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug  string    `gorm:"type:varchar(255);not null;unique"`
	Title string    `gorm:"type:varchar(255);not null"`
	Body  string    `gorm:"type:text;not null;default:''"`
}

func (Guide) TableName() string   { return "public.guides" }
func (Guide) IsSharedModel() bool { return true }

func (g *Guide) BeforeSave(_ *gorm.DB) error {
	g.Body = contentPolicy.Sanitize(g.Body)
	return nil
}

type NewsItem struct {
	AutoTimeModel

	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Body        string     `gorm:"type:text;not null;default:''"`
	PublishedAt *time.Time `gorm:""`
}

func (NewsItem) TableName() string   { return "public.news_items" }
func (NewsItem) IsSharedModel() bool { return true }

func (n *NewsItem) BeforeSave(_ *gorm.DB) error {
	n.Body = contentPolicy.Sanitize(n.Body)
	return nil
}

type Announcement struct {
	AutoTimeModel

	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title    string     `gorm:"type:varchar(255);not null"`
	Body     string     `gorm:"type:text;not null;default:''"`
	StartsAt *time.Time `gorm:""`
	EndsAt   *time.Time `gorm:""`
}

func (Announcement) TableName() string   { return "public.announcements" }
func (Announcement) IsSharedModel() bool { return true }

func (a *Announcement) BeforeSave(_ *gorm.DB) error {
	a.Body = contentPolicy.Sanitize(a.Body)
	return nil
}

// AgentTemplate is a shared, named agent configuration tenants
// instantiate private Agents from.
type AgentTemplate struct {
	AutoTimeModel

	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Slug        string          `gorm:"type:varchar(255);not null;unique"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	Config      json.RawMessage `gorm:"type:jsonb"`
}

func (AgentTemplate) TableName() string   { return "public.agent_templates" }
func (AgentTemplate) IsSharedModel() bool { return true }
