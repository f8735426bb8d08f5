// Package repoctx provides the per-repository key/value context store.
package repoctx

import (
	"errors"
	"fmt"

	"github.com/lorefile/lore/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no value exists for the requested key.
var ErrNotFound = errors.New("repoctx: not found")

// Set writes or replaces the value for (repoRoot, key).
func Set(gdb *gorm.DB, repoRoot, key, value string) error {
	if repoRoot == "" {
		return fmt.Errorf("repoctx: repo root is required")
	}
	if key == "" {
		return fmt.Errorf("repoctx: key is required")
	}
	ctx := models.RepoContext{RepoRoot: repoRoot, Key: key, Value: value}
	err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "repo_root"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&ctx).Error
	if err != nil {
		return fmt.Errorf("repoctx: set %s/%s: %w", repoRoot, key, err)
	}
	return nil
}

// Get returns the value for (repoRoot, key).
func Get(gdb *gorm.DB, repoRoot, key string) (string, error) {
	var ctx models.RepoContext
	err := gdb.Where("repo_root = ? AND key = ?", repoRoot, key).First(&ctx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: %s/%s", ErrNotFound, repoRoot, key)
		}
		return "", fmt.Errorf("repoctx: get %s/%s: %w", repoRoot, key, err)
	}
	return ctx.Value, nil
}

// All returns every context entry for a repository, ordered by key.
func All(gdb *gorm.DB, repoRoot string) ([]models.RepoContext, error) {
	var entries []models.RepoContext
	err := gdb.Where("repo_root = ?", repoRoot).Order("key ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("repoctx: list %s: %w", repoRoot, err)
	}
	return entries, nil
}

// Delete removes the entry for (repoRoot, key).
func Delete(gdb *gorm.DB, repoRoot, key string) error {
	res := gdb.Where("repo_root = ? AND key = ?", repoRoot, key).Delete(&models.RepoContext{})
	if res.Error != nil {
		return fmt.Errorf("repoctx: delete %s/%s: %w", repoRoot, key, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, repoRoot, key)
	}
	return nil
}
