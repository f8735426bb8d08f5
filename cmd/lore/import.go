package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/lorefile/lore/internal/db"
	"github.com/lorefile/lore/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Legacy source import commands",
		Long: `Imports legacy sources into the store. Imports are idempotent: records
already present are skipped, so re-running against the same source is safe.`,
	}

	cmd.AddCommand(newImportStructuredCmd())
	cmd.AddCommand(newImportLogCmd())
	cmd.AddCommand(newImportRunsCmd())
	return cmd
}

func newImportStructuredCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "structured <file>",
		Short: "Import tasks and insights from a structured list file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			res, err := importer.FromStructured(gdb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks, %d insights (%d skipped)\n",
				res.TasksImported, res.InsightsImported, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newImportLogCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "log <file>",
		Short: "Import sessions from an append-only session log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			res, err := importer.FromLog(gdb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sessions (%d skipped)\n",
				res.Imported, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newImportRunsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show the import audit ledger, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			runs, err := importer.Runs(gdb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No imports recorded.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tKIND\tSOURCE\tIMPORTED\tSKIPPED")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
					run.StartedAt.Format("2006-01-02 15:04"), run.Kind, run.Source, run.Imported, run.Skipped)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}
