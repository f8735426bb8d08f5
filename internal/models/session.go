package models

import "time"

// Session is an immutable record of one work session, recovered from the
// session log or recorded directly. The ID is derived from (Date,
// SessionNumber), so re-importing the same log block yields the same row.
type Session struct {
	ID            string `gorm:"primaryKey;size:32"`
	Date          string `gorm:"size:10;not null;uniqueIndex:idx_sessions_date_number"`
	SessionNumber int    `gorm:"not null;uniqueIndex:idx_sessions_date_number"`
	TaskID        string `gorm:"size:32;index"`
	TaskType      string `gorm:"size:16"`
	TaskTitle     string `gorm:"size:256"`
	Outcome       string `gorm:"size:16"`
	OutcomeReason string `gorm:"size:256"`
	Summary       string `gorm:"type:text"`
	Learnings     string `gorm:"type:text"`
	FilesChanged  string `gorm:"type:json"`
	InsightsAdded string `gorm:"type:json"`
	CreatedAt     time.Time
}
