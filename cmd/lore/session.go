package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lorefile/lore/internal/db"
	"github.com/lorefile/lore/internal/models"
	"github.com/lorefile/lore/internal/session"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Work-session record commands",
	}

	cmd.AddCommand(newSessionRecordCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionShowCmd())
	return cmd
}

func newSessionRecordCmd() *cobra.Command {
	var (
		configPath string
		date       string
		number     int
		taskID     string
		outcome    string
		reason     string
		summary    string
		learnings  []string
		files      []string
		insights   []string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a completed work session",
		Long: `Records one work session. Sessions are immutable once recorded. When
--number is omitted, the next number for the date is assigned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			if number == 0 {
				number, err = session.NextNumber(gdb, date)
				if err != nil {
					return err
				}
			}

			s, err := session.Create(gdb, session.CreateOpts{
				Date:          date,
				Number:        number,
				TaskID:        taskID,
				Outcome:       strings.ToUpper(outcome),
				OutcomeReason: reason,
				Summary:       summary,
				Learnings:     strings.Join(learnings, "\n"),
				FilesChanged:  files,
				InsightsAdded: insights,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded session %s\n", s.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().StringVar(&date, "date", "", "session date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&number, "number", 0, "session number within the date (default next)")
	cmd.Flags().StringVar(&taskID, "task", "", "task the session worked on")
	cmd.Flags().StringVar(&outcome, "outcome", "", "outcome: COMPLETE, PARTIAL, BLOCKED")
	cmd.Flags().StringVar(&reason, "reason", "", "blocked reason")
	cmd.Flags().StringVar(&summary, "summary", "", "what happened")
	cmd.Flags().StringSliceVar(&learnings, "learning", nil, "a learning from the session (repeatable)")
	cmd.Flags().StringSliceVar(&files, "file", nil, "a file changed (repeatable)")
	cmd.Flags().StringSliceVar(&insights, "insight", nil, "an insight id added (repeatable)")
	return cmd
}

func newSessionListCmd() *cobra.Command {
	var (
		configPath string
		date       string
		taskID     string
		outcome    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			sessions, err := session.List(gdb, session.ListFilters{
				Date:    date,
				TaskID:  taskID,
				Outcome: strings.ToUpper(outcome),
			})
			if err != nil {
				return err
			}
			printSessionTable(cmd, sessions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().StringVar(&date, "date", "", "filter by date YYYY-MM-DD")
	cmd.Flags().StringVar(&taskID, "task", "", "filter by task id")
	cmd.Flags().StringVar(&outcome, "outcome", "", "filter by outcome")
	return cmd
}

func newSessionShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one session in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			s, err := session.Get(gdb, args[0])
			if err != nil {
				return err
			}
			printSession(cmd, s)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func printSessionTable(cmd *cobra.Command, sessions []models.Session) {
	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\t#\tTASK\tOUTCOME\tSUMMARY")
	for _, s := range sessions {
		outcome := s.Outcome
		if outcome == "" {
			outcome = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			s.ID, s.Date, s.SessionNumber, s.TaskID, outcome, truncate(firstLine(s.Summary), 48))
	}
	w.Flush()
}

func printSession(cmd *cobra.Command, s *models.Session) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s session %d\n", s.ID, s.Date, s.SessionNumber)
	if s.TaskID != "" {
		fmt.Fprintf(out, "Task: %s", s.TaskID)
		if s.TaskTitle != "" {
			fmt.Fprintf(out, " (%s)", s.TaskTitle)
		}
		fmt.Fprintln(out)
	}
	if s.Outcome != "" {
		fmt.Fprintf(out, "Outcome: %s", s.Outcome)
		if s.OutcomeReason != "" {
			fmt.Fprintf(out, " (%s)", s.OutcomeReason)
		}
		fmt.Fprintln(out)
	}
	if s.Summary != "" {
		fmt.Fprintf(out, "\n%s\n", s.Summary)
	}
	if s.Learnings != "" {
		fmt.Fprintln(out, "\nLearnings:")
		for _, l := range strings.Split(s.Learnings, "\n") {
			fmt.Fprintf(out, "  - %s\n", l)
		}
	}
	if files := models.UnmarshalList(s.FilesChanged); len(files) > 0 {
		fmt.Fprintf(out, "Files changed: %s\n", strings.Join(files, ", "))
	}
	if insights := models.UnmarshalList(s.InsightsAdded); len(insights) > 0 {
		fmt.Fprintf(out, "Insights added: %s\n", strings.Join(insights, ", "))
	}
}
