// Command textlab запускает консоль workbench или выполняет отдельные операции бэкенда textlab.
//
//	@title			textlab workbench console
//	@version		1.0
//	@description	Консоль фильтров и кластеризаторов textlab.
//	@BasePath		/api/v1/console
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hsm-textlab/workbench/internal/app"
	config "github.com/hsm-textlab/workbench/internal/cfg"
	"github.com/hsm-textlab/workbench/internal/infrastructure/textlab"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cli - общее состояние команд: настройки и логгер, собранные в PersistentPreRunE.
type cli struct {
	verbose    bool
	configPath string
	backendURL string
	timeout    time.Duration

	cfg    *config.Config
	logger logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "textlab",
		Short:         "Workbench for textlab filters and clusterers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file (or set "+config.ConfigFileEnv+")")
	root.PersistentFlags().StringVar(&c.backendURL, "backend", "", "textlab backend base URL (overrides BACKEND_URL)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "Backend request timeout (overrides BACKEND_TIMEOUT)")

	root.AddCommand(newServeCmd(c))
	root.AddCommand(newFilterCmd(c))
	root.AddCommand(newClustererCmd(c))
	return root
}

// init читает .env, загружает настройки и применяет флаги поверх них.
func (c *cli) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if c.configPath != "" {
		if err := os.Setenv(config.ConfigFileEnv, c.configPath); err != nil {
			return err
		}
	}

	bootstrap, err := logger.NewZapLogger("warn")
	if err != nil {
		return err
	}
	cfg, err := config.Load(bootstrap)
	if err != nil {
		return err
	}
	if c.backendURL != "" {
		cfg.Backend.BaseURL = c.backendURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Backend.Timeout = c.timeout
	}

	level := cfg.Log.Level
	if c.verbose {
		level = "debug"
	}
	log, err := logger.NewZapLogger(level)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = log
	return nil
}

func (c *cli) gateway() *textlab.Gateway {
	return app.NewGateway(c.cfg, c.logger)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
