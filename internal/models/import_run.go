package models

import "time"

// ImportRun records one invocation of the import pipeline for auditing.
type ImportRun struct {
	ID         string `gorm:"primaryKey;size:36"`
	Kind       string `gorm:"size:16;index"`
	Source     string `gorm:"size:512"`
	Imported   int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time
}
