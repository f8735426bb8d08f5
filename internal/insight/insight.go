// Package insight provides insight record operations.
package insight

import (
	"errors"
	"fmt"

	"github.com/lorefile/lore/internal/models"
	"github.com/lorefile/lore/internal/search"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no insight has the requested id.
var ErrNotFound = errors.New("insight: not found")

// ErrDuplicateID is returned when inserting an id that already exists.
var ErrDuplicateID = errors.New("insight: duplicate id")

// DefaultStatus is assigned when a source omits the status field.
const DefaultStatus = "unprocessed"

// ValidTypes are the accepted insight type values.
var ValidTypes = []string{"process", "domain", "architecture", "edge_case", "technical"}

// ValidStatuses are the accepted insight status values.
var ValidStatuses = []string{"unprocessed", "discussed"}

// CreateOpts holds parameters for creating a new insight.
type CreateOpts struct {
	ID      string // required, e.g. INS-042
	Content string // required
	Summary string
	Type    string // defaults to technical
	Status  string // defaults to unprocessed
	Tags    []string
	Links   []string
	Source  string
	Notes   string
}

// ListFilters holds optional equality filters for listing insights.
type ListFilters struct {
	Status string
	Type   string
}

// Create inserts a new insight and its search index row in one transaction.
func Create(gdb *gorm.DB, opts CreateOpts) (*models.Insight, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("insight: id is required")
	}
	if opts.Content == "" {
		return nil, fmt.Errorf("insight: content is required")
	}
	if opts.Type == "" {
		opts.Type = "technical"
	}
	if !contains(ValidTypes, opts.Type) {
		return nil, fmt.Errorf("insight: invalid type %q; valid types: %v", opts.Type, ValidTypes)
	}
	if opts.Status == "" {
		opts.Status = DefaultStatus
	}
	if !contains(ValidStatuses, opts.Status) {
		return nil, fmt.Errorf("insight: invalid status %q; valid statuses: %v", opts.Status, ValidStatuses)
	}

	var count int64
	if err := gdb.Model(&models.Insight{}).Where("id = ?", opts.ID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("insight: check id %s: %w", opts.ID, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, opts.ID)
	}

	ins := models.Insight{
		ID:      opts.ID,
		Content: opts.Content,
		Summary: opts.Summary,
		Type:    opts.Type,
		Status:  opts.Status,
		Tags:    models.MarshalList(opts.Tags),
		Links:   models.MarshalList(opts.Links),
		Source:  opts.Source,
		Notes:   opts.Notes,
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ins).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrDuplicateID, opts.ID)
			}
			return fmt.Errorf("insight: create %s: %w", opts.ID, err)
		}
		return search.IndexInsight(tx, &ins)
	})
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

// Get retrieves an insight by id.
func Get(gdb *gorm.DB, id string) (*models.Insight, error) {
	var ins models.Insight
	if err := gdb.Where("id = ?", id).First(&ins).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("insight: get %s: %w", id, err)
	}
	return &ins, nil
}

// List returns insights matching the filters, ordered by creation time.
func List(gdb *gorm.DB, filters ListFilters) ([]models.Insight, error) {
	q := gdb.Model(&models.Insight{})
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	var insights []models.Insight
	if err := q.Order("created_at ASC, id ASC").Find(&insights).Error; err != nil {
		return nil, fmt.Errorf("insight: list: %w", err)
	}
	return insights, nil
}

// Count returns the total number of insights.
func Count(gdb *gorm.DB) (int64, error) {
	var count int64
	if err := gdb.Model(&models.Insight{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("insight: count: %w", err)
	}
	return count, nil
}

// Update modifies insight fields and refreshes the search index row in the
// same transaction. Status and type values are validated when present.
func Update(gdb *gorm.DB, id string, updates map[string]interface{}) (*models.Insight, error) {
	if status, ok := updates["status"].(string); ok && !contains(ValidStatuses, status) {
		return nil, fmt.Errorf("insight: invalid status %q; valid statuses: %v", status, ValidStatuses)
	}
	if typ, ok := updates["type"].(string); ok && !contains(ValidTypes, typ) {
		return nil, fmt.Errorf("insight: invalid type %q; valid types: %v", typ, ValidTypes)
	}

	var updated models.Insight
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var ins models.Insight
		if err := tx.Where("id = ?", id).First(&ins).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return fmt.Errorf("insight: get %s for update: %w", id, err)
		}
		if err := tx.Model(&ins).Updates(updates).Error; err != nil {
			return fmt.Errorf("insight: update %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			return fmt.Errorf("insight: reload %s: %w", id, err)
		}
		return search.IndexInsight(tx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an insight and its search index row in one transaction.
func Delete(gdb *gorm.DB, id string) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Insight{})
		if res.Error != nil {
			return fmt.Errorf("insight: delete %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return search.RemoveInsight(tx, id)
	})
}

// Search returns insights ranked by relevance to a free-text query over
// content, summary, and tags.
func Search(gdb *gorm.DB, query string) ([]models.Insight, error) {
	ids, err := search.QueryInsightIDs(gdb, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var insights []models.Insight
	if err := gdb.Where("id IN ?", ids).Find(&insights).Error; err != nil {
		return nil, fmt.Errorf("insight: load search results: %w", err)
	}

	byID := make(map[string]models.Insight, len(insights))
	for _, ins := range insights {
		byID[ins.ID] = ins
	}
	ranked := make([]models.Insight, 0, len(ids))
	for _, id := range ids {
		if ins, ok := byID[id]; ok {
			ranked = append(ranked, ins)
		}
	}
	return ranked, nil
}

// Link records a relation from one insight to another. Relations may form
// cycles; a self-link is rejected. The reverse direction is not implied.
func Link(gdb *gorm.DB, id, targetID string) (*models.Insight, error) {
	if id == targetID {
		return nil, fmt.Errorf("insight: cannot link %s to itself", id)
	}
	if _, err := Get(gdb, targetID); err != nil {
		return nil, err
	}

	ins, err := Get(gdb, id)
	if err != nil {
		return nil, err
	}
	links := models.UnmarshalList(ins.Links)
	for _, l := range links {
		if l == targetID {
			return ins, nil
		}
	}
	links = append(links, targetID)
	return Update(gdb, id, map[string]interface{}{"links": models.MarshalList(links)})
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
