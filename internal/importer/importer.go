// Package importer reconciles the legacy sources into the canonical store.
// Imports are idempotent: every candidate record is looked up by id first and
// inserted only when absent, so re-running against an unchanged source
// produces zero new records.
package importer

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lorefile/lore/internal/config"
	"github.com/lorefile/lore/internal/insight"
	"github.com/lorefile/lore/internal/legacy"
	"github.com/lorefile/lore/internal/models"
	"github.com/lorefile/lore/internal/session"
	"github.com/lorefile/lore/internal/task"
	"gorm.io/gorm"
)

// StructuredResult reports one structured-source import.
type StructuredResult struct {
	TasksImported    int
	InsightsImported int
	Skipped          int
}

// Imported returns the total records inserted by the run.
func (r StructuredResult) Imported() int {
	return r.TasksImported + r.InsightsImported
}

// LogResult reports one session-log import.
type LogResult struct {
	Imported int
	Skipped  int
}

// FromStructured imports tasks and insights from a structured list file.
// Records already in the store and malformed records count as skipped; only
// failure to read or parse the document itself aborts the call.
func FromStructured(gdb *gorm.DB, path string) (StructuredResult, error) {
	started := time.Now()
	var res StructuredResult

	src, err := legacy.LoadStructured(path)
	if err != nil {
		return res, err
	}
	res.Skipped = src.Malformed

	for _, rec := range src.Tasks {
		if _, err := task.Get(gdb, rec.ID); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, task.ErrNotFound) {
			return res, err
		}

		_, err := task.Create(gdb, task.CreateOpts{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Status:      strings.ToUpper(rec.Status),
			Priority:    strings.ToLower(rec.Priority),
			DependsOn:   rec.DependsOn,
			Acceptance:  rec.Acceptance,
			TestFile:    rec.TestFile,
			Notes:       rec.Notes,
		})
		if err != nil {
			if errors.Is(err, task.ErrDuplicateID) {
				res.Skipped++
				continue
			}
			res.Skipped++
			log.Printf("importer: skipping task %s: %v", rec.ID, err)
			continue
		}
		res.TasksImported++
	}

	for _, rec := range src.Insights {
		if _, err := insight.Get(gdb, rec.ID); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, insight.ErrNotFound) {
			return res, err
		}

		_, err := insight.Create(gdb, insight.CreateOpts{
			ID:      rec.ID,
			Content: rec.Content,
			Summary: rec.Summary,
			Type:    rec.Type,
			Status:  strings.ToLower(rec.Status),
			Tags:    rec.Tags,
			Links:   rec.Links,
			Source:  rec.Source,
			Notes:   rec.Notes,
		})
		if err != nil {
			if errors.Is(err, insight.ErrDuplicateID) {
				res.Skipped++
				continue
			}
			res.Skipped++
			log.Printf("importer: skipping insight %s: %v", rec.ID, err)
			continue
		}
		res.InsightsImported++
	}

	recordRun(gdb, "structured", path, res.Imported(), res.Skipped, started)
	return res, nil
}

// FromLog imports sessions from the append-only session log. Session ids are
// derived from (date, session number), so blocks already imported are found
// by id and skipped.
func FromLog(gdb *gorm.DB, path string) (LogResult, error) {
	started := time.Now()
	var res LogResult

	scan, err := legacy.LoadLog(path)
	if err != nil {
		return res, err
	}
	res.Skipped = scan.Malformed

	for _, rec := range scan.Sessions {
		id := session.ComputeID(rec.Date, rec.Number)
		if _, err := session.Get(gdb, id); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, session.ErrNotFound) {
			return res, err
		}

		_, err := session.Create(gdb, session.CreateOpts{
			Date:          rec.Date,
			Number:        rec.Number,
			TaskID:        rec.TaskID,
			TaskType:      rec.TaskType,
			TaskTitle:     rec.TaskTitle,
			Outcome:       rec.Outcome,
			OutcomeReason: rec.OutcomeReason,
			Summary:       rec.Summary,
			Learnings:     strings.Join(rec.Learnings, "\n"),
			FilesChanged:  rec.FilesChanged,
			InsightsAdded: rec.InsightsAdded,
		})
		if err != nil {
			if errors.Is(err, session.ErrDuplicateID) {
				res.Skipped++
				continue
			}
			res.Skipped++
			log.Printf("importer: skipping session %s: %v", id, err)
			continue
		}
		res.Imported++
	}

	recordRun(gdb, "log", path, res.Imported, res.Skipped, started)
	return res, nil
}

// Bootstrap runs the one-time legacy import on a fresh store: the structured
// sources when no tasks or insights exist, and the session log when no
// sessions exist. The emptiness check itself is the re-entrancy guard; no
// lock file is involved, and a populated store is never re-imported here.
func Bootstrap(gdb *gorm.DB, cfg *config.Config) error {
	tasks, err := task.Count(gdb)
	if err != nil {
		return err
	}
	insights, err := insight.Count(gdb)
	if err != nil {
		return err
	}
	if tasks == 0 && insights == 0 {
		for _, path := range []string{
			cfg.LegacyPath(cfg.Legacy.TasksFile),
			cfg.LegacyPath(cfg.Legacy.InsightsFile),
		} {
			if !fileExists(path) {
				continue
			}
			res, err := FromStructured(gdb, path)
			if err != nil {
				return err
			}
			log.Printf("importer: bootstrapped %s: %d tasks, %d insights, %d skipped",
				path, res.TasksImported, res.InsightsImported, res.Skipped)
		}
	}

	sessions, err := session.Count(gdb)
	if err != nil {
		return err
	}
	if sessions == 0 {
		if path := cfg.LegacyPath(cfg.Legacy.SessionLog); fileExists(path) {
			res, err := FromLog(gdb, path)
			if err != nil {
				return err
			}
			log.Printf("importer: bootstrapped %s: %d sessions, %d skipped",
				path, res.Imported, res.Skipped)
		}
	}
	return nil
}

// Runs returns the import audit ledger, newest first.
func Runs(gdb *gorm.DB) ([]models.ImportRun, error) {
	var runs []models.ImportRun
	if err := gdb.Order("started_at DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// recordRun appends an audit row for one pipeline invocation. Audit failures
// are logged, not surfaced: the import itself already succeeded.
func recordRun(gdb *gorm.DB, kind, source string, imported, skipped int, started time.Time) {
	run := models.ImportRun{
		ID:         uuid.NewString(),
		Kind:       kind,
		Source:     source,
		Imported:   imported,
		Skipped:    skipped,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if err := gdb.Create(&run).Error; err != nil {
		log.Printf("importer: record %s run for %s: %v", kind, source, err)
	}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
