package models

import "time"

// RepoContext holds per-repository key/value state.
type RepoContext struct {
	RepoRoot  string `gorm:"primaryKey;size:256"`
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
