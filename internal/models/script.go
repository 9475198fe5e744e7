package models

import "time"

// Script statuses.
const (
	ScriptStatusDraft    = "draft"
	ScriptStatusActive   = "active"
	ScriptStatusArchived = "archived"
)

// ScriptStatuses is the closed set of valid script status values.
var ScriptStatuses = []string{ScriptStatusDraft, ScriptStatusActive, ScriptStatusArchived}

// ScriptPlatforms is the closed set of valid script source platforms.
var ScriptPlatforms = []string{
	"RSS Feed",
	"YouTube Video",
	"Upload Files",
	"web",
	"mobile",
	"desktop",
	"api",
	"database",
	"other",
}

// Script is a versioned text document belonging to a project. Owner is
// denormalized from the parent project for authorization filtering only;
// the cascade delete keys on ProjectID. Version starts at 1 and grows by
// exactly one per successful update call.
type Script struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Platform    string    `gorm:"size:50;not null" json:"platform"`
	Transcript  string    `gorm:"type:text;not null" json:"transcript"`
	ProjectID   uint      `gorm:"index;not null" json:"project_id"`
	OwnerID     uint      `gorm:"index;not null" json:"owner_id"`
	Version     int       `gorm:"default:1" json:"version"`
	Status      string    `gorm:"size:20;default:draft" json:"status"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	LastUpdated time.Time `gorm:"index" json:"last_updated"`
	UploadDate  string    `gorm:"size:20" json:"upload_date"` // "02 Jan 06", set once at creation
	UploadTime  string    `gorm:"size:10" json:"upload_time"` // "15:04", set once at creation
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Script) TableName() string { return "scripts" }
