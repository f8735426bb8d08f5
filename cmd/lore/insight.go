package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/lorefile/lore/internal/db"
	"github.com/lorefile/lore/internal/insight"
	"github.com/lorefile/lore/internal/models"
	"github.com/spf13/cobra"
)

func newInsightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Insight management commands",
	}

	cmd.AddCommand(newInsightAddCmd())
	cmd.AddCommand(newInsightListCmd())
	cmd.AddCommand(newInsightShowCmd())
	cmd.AddCommand(newInsightLinkCmd())
	cmd.AddCommand(newInsightDiscussedCmd())
	return cmd
}

func newInsightAddCmd() *cobra.Command {
	var (
		configPath string
		id         string
		content    string
		summary    string
		insType    string
		tags       []string
		source     string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new insight",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			ins, err := insight.Create(gdb, insight.CreateOpts{
				ID:      id,
				Content: content,
				Summary: summary,
				Type:    insType,
				Tags:    tags,
				Source:  source,
				Notes:   notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded insight %s [%s]\n", ins.ID, ins.Type)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().StringVar(&id, "id", "", "insight id, e.g. INS-042 (required)")
	cmd.Flags().StringVar(&content, "content", "", "insight content (required)")
	cmd.Flags().StringVar(&summary, "summary", "", "short summary")
	cmd.Flags().StringVar(&insType, "type", "", "type: process, domain, architecture, edge_case, technical")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tags")
	cmd.Flags().StringVar(&source, "source", "", "originating task or session id")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("content")
	return cmd
}

func newInsightListCmd() *cobra.Command {
	var (
		configPath string
		status     string
		insType    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			insights, err := insight.List(gdb, insight.ListFilters{Status: status, Type: insType})
			if err != nil {
				return err
			}
			printInsightTable(cmd, insights)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&insType, "type", "", "filter by type")
	return cmd
}

func newInsightShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one insight in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			ins, err := insight.Get(gdb, args[0])
			if err != nil {
				return err
			}
			printInsight(cmd, ins)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newInsightLinkCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "link <id> <target-id>",
		Short: "Link an insight to another insight",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			ins, err := insight.Link(gdb, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked %s -> %s (links: %s)\n",
				ins.ID, args[1], strings.Join(models.UnmarshalList(ins.Links), ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newInsightDiscussedCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "discussed <id>",
		Short: "Mark an insight as discussed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			ins, err := insight.Update(gdb, args[0], map[string]interface{}{"status": "discussed"})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Insight %s marked discussed\n", ins.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func printInsightTable(cmd *cobra.Command, insights []models.Insight) {
	out := cmd.OutOrStdout()
	if len(insights) == 0 {
		fmt.Fprintln(out, "No insights found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tCONTENT")
	for _, ins := range insights {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ins.ID, ins.Type, ins.Status, truncate(firstLine(ins.Content), 60))
	}
	w.Flush()
}

func printInsight(cmd *cobra.Command, ins *models.Insight) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s [%s/%s]\n\n%s\n", ins.ID, ins.Type, ins.Status, ins.Content)
	if ins.Summary != "" {
		fmt.Fprintf(out, "\nSummary: %s\n", ins.Summary)
	}
	if tags := models.UnmarshalList(ins.Tags); len(tags) > 0 {
		fmt.Fprintf(out, "Tags: %s\n", strings.Join(tags, ", "))
	}
	if links := models.UnmarshalList(ins.Links); len(links) > 0 {
		fmt.Fprintf(out, "Links: %s\n", strings.Join(links, ", "))
	}
	if ins.Source != "" {
		fmt.Fprintf(out, "Source: %s\n", ins.Source)
	}
	if ins.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", ins.Notes)
	}
	fmt.Fprintf(out, "Created: %s  Updated: %s\n",
		ins.CreatedAt.Format("2006-01-02 15:04"), ins.UpdatedAt.Format("2006-01-02 15:04"))
}
