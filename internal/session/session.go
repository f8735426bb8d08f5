// Package session provides work-session record operations. Sessions are
// immutable historical facts: they are inserted once and never updated.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lorefile/lore/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no session has the requested id.
var ErrNotFound = errors.New("session: not found")

// ErrDuplicateID is returned when a (date, number) pair is already recorded.
var ErrDuplicateID = errors.New("session: duplicate id")

// ValidOutcomes are the accepted session outcome values. An empty outcome
// means the source did not record one; it is stored as-is, never inferred.
var ValidOutcomes = []string{"COMPLETE", "PARTIAL", "BLOCKED"}

// CreateOpts holds parameters for recording a session.
type CreateOpts struct {
	Date          string // required, YYYY-MM-DD
	Number        int    // required, >= 1, monotonic per day
	TaskID        string
	TaskType      string
	TaskTitle     string
	Outcome       string // COMPLETE, PARTIAL, BLOCKED, or empty for unknown
	OutcomeReason string
	Summary       string
	Learnings     string
	FilesChanged  []string
	InsightsAdded []string
}

// ListFilters holds optional equality filters for listing sessions.
type ListFilters struct {
	Date    string
	TaskID  string
	Outcome string
}

// ComputeID derives the canonical session id from (date, number). The same
// pair always produces the same id, which is what makes log re-imports
// idempotent.
func ComputeID(date string, number int) string {
	return fmt.Sprintf("SES-%s-%02d", strings.ReplaceAll(date, "-", ""), number)
}

// Create records a session. The id is derived from (Date, Number); recording
// the same pair twice fails with ErrDuplicateID.
func Create(gdb *gorm.DB, opts CreateOpts) (*models.Session, error) {
	if _, err := time.Parse("2006-01-02", opts.Date); err != nil {
		return nil, fmt.Errorf("session: invalid date %q: %w", opts.Date, err)
	}
	if opts.Number < 1 {
		return nil, fmt.Errorf("session: session number must be >= 1, got %d", opts.Number)
	}
	if opts.Outcome != "" && !validOutcome(opts.Outcome) {
		return nil, fmt.Errorf("session: invalid outcome %q; valid outcomes: %v", opts.Outcome, ValidOutcomes)
	}

	id := ComputeID(opts.Date, opts.Number)

	var count int64
	if err := gdb.Model(&models.Session{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("session: check id %s: %w", id, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	s := models.Session{
		ID:            id,
		Date:          opts.Date,
		SessionNumber: opts.Number,
		TaskID:        opts.TaskID,
		TaskType:      opts.TaskType,
		TaskTitle:     opts.TaskTitle,
		Outcome:       opts.Outcome,
		OutcomeReason: opts.OutcomeReason,
		Summary:       opts.Summary,
		Learnings:     opts.Learnings,
		FilesChanged:  models.MarshalList(opts.FilesChanged),
		InsightsAdded: models.MarshalList(opts.InsightsAdded),
	}

	if err := gdb.Create(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		return nil, fmt.Errorf("session: create %s: %w", id, err)
	}
	return &s, nil
}

// Get retrieves a session by id.
func Get(gdb *gorm.DB, id string) (*models.Session, error) {
	var s models.Session
	if err := gdb.Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	return &s, nil
}

// List returns sessions matching the filters, newest first.
func List(gdb *gorm.DB, filters ListFilters) ([]models.Session, error) {
	q := gdb.Model(&models.Session{})
	if filters.Date != "" {
		q = q.Where("date = ?", filters.Date)
	}
	if filters.TaskID != "" {
		q = q.Where("task_id = ?", filters.TaskID)
	}
	if filters.Outcome != "" {
		q = q.Where("outcome = ?", filters.Outcome)
	}
	var sessions []models.Session
	if err := q.Order("date DESC, session_number DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("session: list: %w", err)
	}
	return sessions, nil
}

// Count returns the total number of sessions.
func Count(gdb *gorm.DB) (int64, error) {
	var count int64
	if err := gdb.Model(&models.Session{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("session: count: %w", err)
	}
	return count, nil
}

// NextNumber returns the next session number for a date: one past the highest
// recorded number, starting at 1.
func NextNumber(gdb *gorm.DB, date string) (int, error) {
	var max int
	err := gdb.Model(&models.Session{}).
		Where("date = ?", date).
		Select("COALESCE(MAX(session_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("session: next number for %s: %w", date, err)
	}
	return max + 1, nil
}

func validOutcome(outcome string) bool {
	for _, v := range ValidOutcomes {
		if v == outcome {
			return true
		}
	}
	return false
}
