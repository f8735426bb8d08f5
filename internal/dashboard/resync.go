package dashboard

import (
	"fmt"
	"log"
	"os"

	"github.com/lorefile/lore/internal/config"
	"github.com/lorefile/lore/internal/importer"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// startResync schedules periodic re-imports of the configured legacy sources.
// Because imports are idempotent, each tick only picks up appended records.
// The returned stop function halts the scheduler.
func startResync(gdb *gorm.DB, cfg *config.Config) (func(), error) {
	c := cron.New()
	_, err := c.AddFunc(cfg.Dashboard.Resync, func() {
		resyncOnce(gdb, cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: invalid resync spec %q: %w", cfg.Dashboard.Resync, err)
	}
	c.Start()
	return func() { c.Stop() }, nil
}

// resyncOnce re-imports every configured legacy source that exists on disk.
func resyncOnce(gdb *gorm.DB, cfg *config.Config) {
	for _, path := range []string{
		cfg.LegacyPath(cfg.Legacy.TasksFile),
		cfg.LegacyPath(cfg.Legacy.InsightsFile),
	} {
		if !fileExists(path) {
			continue
		}
		res, err := importer.FromStructured(gdb, path)
		if err != nil {
			log.Printf("dashboard: resync %s: %v", path, err)
			continue
		}
		if n := res.Imported(); n > 0 {
			log.Printf("dashboard: resync %s: imported %d new records", path, n)
		}
	}

	if path := cfg.LegacyPath(cfg.Legacy.SessionLog); fileExists(path) {
		res, err := importer.FromLog(gdb, path)
		if err != nil {
			log.Printf("dashboard: resync %s: %v", path, err)
			return
		}
		if res.Imported > 0 {
			log.Printf("dashboard: resync %s: imported %d new sessions", path, res.Imported)
		}
	}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
