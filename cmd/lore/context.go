package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/lorefile/lore/internal/db"
	"github.com/lorefile/lore/internal/repoctx"
	"github.com/spf13/cobra"
)

func newContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Per-repository context commands",
	}

	cmd.AddCommand(newContextSetCmd())
	cmd.AddCommand(newContextGetCmd())
	cmd.AddCommand(newContextListCmd())
	cmd.AddCommand(newContextUnsetCmd())
	return cmd
}

func newContextSetCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a context value for this repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if err := repoctx.Set(gdb, cfg.RepoRoot, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newContextGetCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a context value for this repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			value, err := repoctx.Get(gdb, cfg.RepoRoot, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newContextListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List context entries for this repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			entries, err := repoctx.All(gdb, cfg.RepoRoot)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No context entries.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\n", e.Key, truncate(firstLine(e.Value), 70))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}

func newContextUnsetCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a context entry for this repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if err := repoctx.Delete(gdb, cfg.RepoRoot, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	return cmd
}
