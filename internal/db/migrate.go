package db

import (
	"fmt"
	"time"

	"github.com/lorefile/lore/internal/models"
	"github.com/lorefile/lore/internal/search"
	"gorm.io/gorm"
)

// Migration is one schema version: its DDL plus a ledger description.
type Migration struct {
	Version     int
	Description string
	Apply       func(tx *gorm.DB) error
}

// Result reports the outcome of a MigrateToLatest call.
type Result struct {
	From int
	To   int
}

// migrations returns all schema versions in ascending order. Entries are
// append-only; released versions are never edited.
func migrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "core tables and search indexes",
			Apply: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(
					&models.Insight{},
					&models.Task{},
					&models.Session{},
				); err != nil {
					return err
				}
				return search.CreateTables(tx)
			},
		},
		{
			Version:     2,
			Description: "per-repository context store",
			Apply: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.RepoContext{})
			},
		},
		{
			Version:     3,
			Description: "import run audit ledger",
			Apply: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ImportRun{})
			},
		},
	}
}

// CurrentSchemaVersion is the version the newest migration produces.
func CurrentSchemaVersion() int {
	m := migrations()
	return m[len(m)-1].Version
}

// CurrentVersion returns the highest version recorded in the ledger, or 0
// when the ledger table does not exist yet.
func CurrentVersion(gdb *gorm.DB) (int, error) {
	if !gdb.Migrator().HasTable(&models.SchemaVersion{}) {
		return 0, nil
	}
	var version int
	err := gdb.Model(&models.SchemaVersion{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	if err != nil {
		return 0, fmt.Errorf("db: read schema version: %w", err)
	}
	return version, nil
}

// MigrateToLatest applies all pending schema versions in ascending order.
// Each version and its ledger row commit in one transaction, so a failure
// mid-way leaves the ledger at the last fully applied version. Re-running
// at the latest version is a no-op with From == To.
func MigrateToLatest(gdb *gorm.DB) (Result, error) {
	from, err := CurrentVersion(gdb)
	if err != nil {
		return Result{}, err
	}
	res := Result{From: from, To: from}

	if from == 0 {
		if err := gdb.AutoMigrate(&models.SchemaVersion{}); err != nil {
			return res, fmt.Errorf("db: create schema ledger: %w", err)
		}
	}

	for _, m := range migrations() {
		if m.Version <= res.To {
			continue
		}
		err := gdb.Transaction(func(tx *gorm.DB) error {
			if err := m.Apply(tx); err != nil {
				return err
			}
			row := models.SchemaVersion{
				Version:     m.Version,
				Description: m.Description,
				AppliedAt:   time.Now(),
			}
			return tx.Create(&row).Error
		})
		if err != nil {
			return res, fmt.Errorf("db: apply schema version %d (%s): %w", m.Version, m.Description, err)
		}
		res.To = m.Version
	}
	return res, nil
}
