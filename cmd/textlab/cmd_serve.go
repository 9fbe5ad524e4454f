package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hsm-textlab/workbench/internal/app"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP console",
		Long: `Starts the console API under /api/v1/console.
Redis, PostgreSQL, MinIO and Kafka are used when configured and skipped otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				c.cfg.Http.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApp(ctx, c.cfg, c.logger)
			if err != nil {
				c.logger.Errorf(err, "failed to initialize app")
				return err
			}
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port (overrides HTTP_PORT)")
	return cmd
}
