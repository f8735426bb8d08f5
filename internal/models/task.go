package models

import "time"

// Task is a unit of backlog work with status and dependency relationships.
type Task struct {
	ID          string `gorm:"primaryKey;size:32"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Summary     string `gorm:"type:text"`
	Status      string `gorm:"size:16;default:TODO;index"`
	Priority    string `gorm:"size:16;default:medium;index"`
	DependsOn   string `gorm:"type:json"`
	Acceptance  string `gorm:"type:json"`
	TestFile    string `gorm:"size:256"`
	Notes       string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
