package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lorefile/lore/internal/config"
	"github.com/lorefile/lore/internal/db"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Store management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBVersionCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the lore store",
		Long:  "Opens (creating if needed) the store, migrates the schema to the latest\nversion, and imports any legacy sources into an empty store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gdb, err := openFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	version, err := db.CurrentVersion(gdb)
	if err != nil {
		return err
	}

	if cfg.Store.Backend == config.BackendLocal {
		fmt.Fprintf(out, "Store ready at %s (schema version %d)\n", cfg.StorePath(), version)
	} else {
		fmt.Fprintf(out, "Store ready at %s:%d/%s (schema version %d)\n",
			cfg.Store.Host, cfg.Store.Port, cfg.Store.Database, version)
	}
	return nil
}

func newDBVersionCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the store schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			gdb, err := db.Open(cfg)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			version, err := db.CurrentVersion(gdb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (latest %d)\n", version, db.CurrentSchemaVersion())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete and re-initialize the local store",
		Long: `Deletes the local store file and re-creates it from scratch (migrate +
legacy bootstrap import). Only supported for the local backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, yes bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Store.Backend != config.BackendLocal {
		return fmt.Errorf("db reset only supports the local backend; drop the %s database manually", cfg.Store.Backend)
	}

	path := cfg.StorePath()
	if !yes {
		ok, err := confirm(cmd, fmt.Sprintf("Delete store %s and all its records? [y/N] ", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	_, gdb, err := openFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	fmt.Fprintf(out, "Store reset at %s\n", path)
	return nil
}

// confirm prompts for a y/N answer. Off a terminal it refuses rather than
// assuming consent; use --yes for scripted resets.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("refusing to reset without a terminal; pass --yes to confirm")
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
