package models

import "time"

// Insight is a recorded piece of domain or process knowledge.
type Insight struct {
	ID        string `gorm:"primaryKey;size:32"`
	Content   string `gorm:"type:text;not null"`
	Summary   string `gorm:"type:text"`
	Type      string `gorm:"size:16;default:technical"`
	Status    string `gorm:"size:16;default:unprocessed;index"`
	Tags      string `gorm:"type:json"`
	Links     string `gorm:"type:json"`
	Source    string `gorm:"size:64"`
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
