package entities

import (
	"time"
)

// Setting is a small key/value blob. The songbook keeps its user overlays
// (favorites, comments) here.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Comma-joined list of favorite song ids
	SettingKeyFavorites = "favorites"
	// JSON object mapping song id to comment text
	SettingKeyComments = "comments"
)
