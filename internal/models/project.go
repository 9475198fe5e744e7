package models

import "time"

// Project statuses.
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
	ProjectStatusDraft    = "draft"
)

// ProjectStatuses is the closed set of valid project status values.
var ProjectStatuses = []string{ProjectStatusActive, ProjectStatusArchived, ProjectStatusDraft}

// Project is a user-owned container of scripts. ScriptsCount is derived:
// it is recomputed from the scripts table after every script mutation and
// never updated independently.
type Project struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"size:500" json:"description"`
	OwnerID      uint      `gorm:"index;not null" json:"owner_id"`
	ScriptsCount int64     `gorm:"default:0" json:"scripts_count"`
	Status       string    `gorm:"size:20;default:active" json:"status"`
	Tags         []string  `gorm:"serializer:json" json:"tags"`
	LastUpdated  time.Time `gorm:"index" json:"last_updated"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
