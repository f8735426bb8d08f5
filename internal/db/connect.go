// Package db provides store connections and schema migration for lore.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lorefile/lore/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a MySQL-compatible DSN for the shared store backend.
func DSN(host string, port int, database string) string {
	return fmt.Sprintf("root@tcp(%s:%d)/%s?parseTime=true", host, port, database)
}

// OpenLocal opens (creating if necessary) the sqlite store file at path.
// Parent directories are created as needed.
func OpenLocal(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("db: create store directory %s: %w", dir, err)
		}
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	return gdb, nil
}

// OpenMySQL opens a connection to a MySQL-protocol store server.
func OpenMySQL(host string, port int, database string) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(DSN(host, port, database)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", host, port, database, err)
	}
	return gdb, nil
}

// Open opens the store selected by the configuration. The returned handle is
// the process-wide store handle; callers pass it explicitly to every
// component that needs it.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Store.Backend {
	case config.BackendLocal:
		return OpenLocal(cfg.StorePath())
	case config.BackendMySQL:
		return OpenMySQL(cfg.Store.Host, cfg.Store.Port, cfg.Store.Database)
	default:
		return nil, fmt.Errorf("db: unknown store backend %q", cfg.Store.Backend)
	}
}

// Close releases the underlying database connection.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("db: close: %w", err)
	}
	return sqlDB.Close()
}
