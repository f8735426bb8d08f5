package main

import (
	"os/signal"
	"syscall"

	"github.com/lorefile/lore/internal/dashboard"
	"github.com/lorefile/lore/internal/db"
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Run the local dashboard server",
		Long: `Serves the read-only dashboard and JSON API. When a resync schedule is
configured, legacy sources are re-imported periodically. Stops on Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openFromConfig(configPath)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if port == 0 {
				port = cfg.Dashboard.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return dashboard.Start(ctx, dashboard.StartOpts{
				DB:   gdb,
				Cfg:  cfg,
				Port: port,
				Out:  cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "lore.yaml", "path to lore config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	return cmd
}
