package main

import (
	"fmt"
	"os"

	"github.com/lorefile/lore/internal/config"
	"github.com/lorefile/lore/internal/db"
	"github.com/lorefile/lore/internal/importer"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lore",
		Short: "Local knowledge store for AI-assisted development",
		Long:  "Lore persists tasks, insights, and work-session records per repository\nand makes them searchable from the command line and the dashboard.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newTaskCmd())
	cmd.AddCommand(newInsightCmd())
	cmd.AddCommand(newSessionCmd())
	cmd.AddCommand(newContextCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newDashboardCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lore %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

// openFromConfig loads configuration and opens the store, bringing the schema
// to the latest version and running the one-time legacy bootstrap import.
// Every command goes through here; the handle is passed down explicitly.
func openFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if _, err := db.MigrateToLatest(gdb); err != nil {
		db.Close(gdb)
		return nil, nil, err
	}
	if err := importer.Bootstrap(gdb, cfg); err != nil {
		db.Close(gdb)
		return nil, nil, err
	}
	return cfg, gdb, nil
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
