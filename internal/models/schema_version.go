package models

import "time"

// SchemaVersion is one row of the append-only migration ledger. Rows are
// written by the schema manager and never updated or deleted.
type SchemaVersion struct {
	Version     int    `gorm:"primaryKey"`
	Description string `gorm:"size:256"`
	AppliedAt   time.Time
}
