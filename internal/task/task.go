// Package task provides task record operations.
package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/lorefile/lore/internal/models"
	"github.com/lorefile/lore/internal/search"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task: not found")

// ErrDuplicateID is returned when inserting an id that already exists.
var ErrDuplicateID = errors.New("task: duplicate id")

// DefaultStatus is assigned when a source omits the status field.
const DefaultStatus = "TODO"

// DefaultPriority is assigned when a source omits the priority field.
const DefaultPriority = "medium"

// ValidPriorities are the accepted task priority values.
var ValidPriorities = []string{"low", "medium", "high", "critical"}

// ValidTransitions maps each status to its valid next statuses.
// isValidTransition additionally allows any status to move to BLOCKED.
var ValidTransitions = map[string][]string{
	"TODO":        {"IN_PROGRESS", "DONE", "BLOCKED"},
	"IN_PROGRESS": {"DONE", "TODO", "BLOCKED"},
	"BLOCKED":     {"TODO", "IN_PROGRESS"},
	"DONE":        {"TODO"},
}

// CreateOpts holds parameters for creating a new task.
type CreateOpts struct {
	ID          string // required, e.g. LF-042
	Title       string // required
	Description string
	Summary     string
	Status      string // defaults to TODO
	Priority    string // defaults to medium
	DependsOn   []string
	Acceptance  []string
	TestFile    string
	Notes       string
}

// ListFilters holds optional equality filters for listing tasks.
type ListFilters struct {
	Status   string
	Priority string
}

// Create inserts a new task and its search index row in one transaction.
// Dependency ids are checked softly: a dependency may reference a task that
// does not exist yet, but never the task itself.
func Create(gdb *gorm.DB, opts CreateOpts) (*models.Task, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("task: id is required")
	}
	if opts.Title == "" {
		return nil, fmt.Errorf("task: title is required")
	}
	if opts.Status == "" {
		opts.Status = DefaultStatus
	}
	if _, ok := ValidTransitions[opts.Status]; !ok {
		return nil, fmt.Errorf("task: invalid status %q", opts.Status)
	}
	if opts.Priority == "" {
		opts.Priority = DefaultPriority
	}
	if !contains(ValidPriorities, opts.Priority) {
		return nil, fmt.Errorf("task: invalid priority %q; valid priorities: %v", opts.Priority, ValidPriorities)
	}
	for _, dep := range opts.DependsOn {
		if dep == opts.ID {
			return nil, fmt.Errorf("task: %s cannot depend on itself", opts.ID)
		}
	}

	var count int64
	if err := gdb.Model(&models.Task{}).Where("id = ?", opts.ID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("task: check id %s: %w", opts.ID, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, opts.ID)
	}

	t := models.Task{
		ID:          opts.ID,
		Title:       opts.Title,
		Description: opts.Description,
		Summary:     opts.Summary,
		Status:      opts.Status,
		Priority:    opts.Priority,
		DependsOn:   models.MarshalList(opts.DependsOn),
		Acceptance:  models.MarshalList(opts.Acceptance),
		TestFile:    opts.TestFile,
		Notes:       opts.Notes,
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrDuplicateID, opts.ID)
			}
			return fmt.Errorf("task: create %s: %w", opts.ID, err)
		}
		return search.IndexTask(tx, &t)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Get retrieves a task by id.
func Get(gdb *gorm.DB, id string) (*models.Task, error) {
	var t models.Task
	if err := gdb.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("task: get %s: %w", id, err)
	}
	return &t, nil
}

// List returns tasks matching the filters, ordered by priority then creation time.
func List(gdb *gorm.DB, filters ListFilters) ([]models.Task, error) {
	q := gdb.Model(&models.Task{})
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		q = q.Where("priority = ?", filters.Priority)
	}
	var tasks []models.Task
	if err := q.Order("created_at ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task: list: %w", err)
	}
	return tasks, nil
}

// Count returns the total number of tasks.
func Count(gdb *gorm.DB) (int64, error) {
	var count int64
	if err := gdb.Model(&models.Task{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("task: count: %w", err)
	}
	return count, nil
}

// Update modifies task fields and refreshes the search index row in the same
// transaction. Status transitions are validated against ValidTransitions.
func Update(gdb *gorm.DB, id string, updates map[string]interface{}) (*models.Task, error) {
	if priority, ok := updates["priority"].(string); ok && !contains(ValidPriorities, priority) {
		return nil, fmt.Errorf("task: invalid priority %q; valid priorities: %v", priority, ValidPriorities)
	}

	var updated models.Task
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var t models.Task
		if err := tx.Where("id = ?", id).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return fmt.Errorf("task: get %s for update: %w", id, err)
		}

		if newStatus, ok := updates["status"].(string); ok {
			if !isValidTransition(t.Status, newStatus) {
				valid := ValidTransitions[t.Status]
				return fmt.Errorf("task: invalid status transition from %q to %q; valid transitions: %v", t.Status, newStatus, valid)
			}
		}
		updates["updated_at"] = time.Now()

		if err := tx.Model(&t).Updates(updates).Error; err != nil {
			return fmt.Errorf("task: update %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			return fmt.Errorf("task: reload %s: %w", id, err)
		}
		return search.IndexTask(tx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a task and its search index row in one transaction.
func Delete(gdb *gorm.DB, id string) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Task{})
		if res.Error != nil {
			return fmt.Errorf("task: delete %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return search.RemoveTask(tx, id)
	})
}

// Search returns tasks ranked by relevance to a free-text query over title,
// description, and summary.
func Search(gdb *gorm.DB, query string) ([]models.Task, error) {
	ids, err := search.QueryTaskIDs(gdb, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var tasks []models.Task
	if err := gdb.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("task: load search results: %w", err)
	}

	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	ranked := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ranked = append(ranked, t)
		}
	}
	return ranked, nil
}

// isValidTransition checks whether a status transition is allowed.
// Re-asserting the current status is always a no-op, and any status may
// move to BLOCKED.
func isValidTransition(from, to string) bool {
	if from == to || to == "BLOCKED" {
		return true
	}
	valid, ok := ValidTransitions[from]
	if !ok {
		return false
	}
	for _, v := range valid {
		if v == to {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
