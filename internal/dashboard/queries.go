package dashboard

import (
	"github.com/lorefile/lore/internal/insight"
	"github.com/lorefile/lore/internal/session"
	"github.com/lorefile/lore/internal/task"
	"gorm.io/gorm"
)

// StoreStats holds record counts for display.
type StoreStats struct {
	Tasks         int64 `json:"tasks"`
	TasksOpen     int64 `json:"tasks_open"`
	Insights      int64 `json:"insights"`
	InsightsFresh int64 `json:"insights_unprocessed"`
	Sessions      int64 `json:"sessions"`
}

// Stats gathers store-wide counts through the entity packages.
func Stats(gdb *gorm.DB) (*StoreStats, error) {
	var stats StoreStats
	var err error

	if stats.Tasks, err = task.Count(gdb); err != nil {
		return nil, err
	}
	if stats.Insights, err = insight.Count(gdb); err != nil {
		return nil, err
	}
	if stats.Sessions, err = session.Count(gdb); err != nil {
		return nil, err
	}

	open, err := task.List(gdb, task.ListFilters{Status: "TODO"})
	if err != nil {
		return nil, err
	}
	stats.TasksOpen = int64(len(open))

	fresh, err := insight.List(gdb, insight.ListFilters{Status: "unprocessed"})
	if err != nil {
		return nil, err
	}
	stats.InsightsFresh = int64(len(fresh))

	return &stats, nil
}
