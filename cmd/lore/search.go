package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/lorefile/lore/internal/db"
	"github.com/lorefile/lore/internal/insight"
	"github.com/lorefile/lore/internal/task"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		configPath string
		kind       string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search insights and tasks",
		Long:  "Searches the full-text indexes and prints results ranked by relevance.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			found := false

			if kind == "" || kind == "insights" {
				insights, err := insight.Search(gdb, query)
				if err != nil {
					return err
				}
				for _, ins := range insights {
					found = true
					fmt.Fprintf(w, "%s\tinsight\t%s\n", ins.ID, truncate(firstLine(ins.Content), 70))
				}
			}
			if kind == "" || kind == "tasks" {
				tasks, err := task.Search(gdb, query)
				if err != nil {
					return err
				}
				for _, t := range tasks {
					found = true
					fmt.Fprintf(w, "%s\ttask\t%s\n", t.ID, truncate(t.Title, 70))
				}
			}
			w.Flush()

			if !found {
				fmt.Fprintf(out, "No matches for %q.\n", query)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().StringVar(&kind, "kind", "", "restrict to insights or tasks")
	return cmd
}
