package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/lorefile/lore/internal/db"
	"github.com/lorefile/lore/internal/models"
	"github.com/lorefile/lore/internal/task"
	"github.com/spf13/cobra"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
	}

	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskShowCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	cmd.AddCommand(newTaskDoneCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var (
		configPath  string
		id          string
		title       string
		description string
		status      string
		priority    string
		dependsOn   []string
		acceptance  []string
		testFile    string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			t, err := task.Create(gdb, task.CreateOpts{
				ID:          id,
				Title:       title,
				Description: description,
				Status:      status,
				Priority:    priority,
				DependsOn:   dependsOn,
				Acceptance:  acceptance,
				TestFile:    testFile,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s [%s/%s]\n", t.ID, t.Status, t.Priority)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().StringVar(&id, "id", "", "task id, e.g. LF-042 (required)")
	cmd.Flags().StringVar(&title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "detailed description")
	cmd.Flags().StringVar(&status, "status", "", "initial status (default TODO)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority: low, medium, high, critical")
	cmd.Flags().StringSliceVar(&dependsOn, "depends-on", nil, "task ids this task depends on")
	cmd.Flags().StringSliceVar(&acceptance, "acceptance", nil, "acceptance criteria")
	cmd.Flags().StringVar(&testFile, "test-file", "", "associated test file")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("title")
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var (
		configPath string
		status     string
		priority   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			tasks, err := task.List(gdb, task.ListFilters{Status: status, Priority: priority})
			if err != nil {
				return err
			}
			printTaskTable(cmd, tasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority")
	return cmd
}

func newTaskShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			t, err := task.Get(gdb, args[0])
			if err != nil {
				return err
			}
			printTask(cmd, t)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		configPath string
		status     string
		priority   string
		notes      string
		summary    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates := map[string]interface{}{}
			if status != "" {
				updates["status"] = status
			}
			if priority != "" {
				updates["priority"] = priority
			}
			if notes != "" {
				updates["notes"] = notes
			}
			if summary != "" {
				updates["summary"] = summary
			}
			if len(updates) == 0 {
				return fmt.Errorf("nothing to update; pass at least one of --status, --priority, --notes, --summary")
			}

			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			t, err := task.Update(gdb, args[0], updates)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s [%s/%s]\n", t.ID, t.Status, t.Priority)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")
	cmd.Flags().StringVar(&notes, "notes", "", "replace notes")
	cmd.Flags().StringVar(&summary, "summary", "", "replace generated summary")
	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task DONE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			t, err := task.Update(gdb, args[0], map[string]interface{}{"status": "DONE"})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s marked DONE\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func printTaskTable(cmd *cobra.Command, tasks []models.Task) {
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, truncate(t.Title, 60))
	}
	w.Flush()
}

func printTask(cmd *cobra.Command, t *models.Task) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s [%s/%s]\n", t.ID, t.Title, t.Status, t.Priority)
	if t.Description != "" {
		fmt.Fprintf(out, "\n%s\n", t.Description)
	}
	if t.Summary != "" {
		fmt.Fprintf(out, "\nSummary: %s\n", t.Summary)
	}
	if deps := models.UnmarshalList(t.DependsOn); len(deps) > 0 {
		fmt.Fprintf(out, "Depends on: %s\n", strings.Join(deps, ", "))
	}
	if acceptance := models.UnmarshalList(t.Acceptance); len(acceptance) > 0 {
		fmt.Fprintln(out, "Acceptance:")
		for _, a := range acceptance {
			fmt.Fprintf(out, "  - %s\n", a)
		}
	}
	if t.TestFile != "" {
		fmt.Fprintf(out, "Test file: %s\n", t.TestFile)
	}
	if t.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", t.Notes)
	}
	fmt.Fprintf(out, "Created: %s  Updated: %s\n",
		t.CreatedAt.Format("2006-01-02 15:04"), t.UpdatedAt.Format("2006-01-02 15:04"))
}
