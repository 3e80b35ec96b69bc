package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/sapienskid/witch/internal/config"
	"github.com/sapienskid/witch/internal/logger"
)

var (
	flagConfig string
	flagVault  string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "witch",
	Short: "witch - publish vault notes to Ghost",
	Long:  "witch publishes markdown notes from a local vault to a Ghost site,\noptionally relocating embedded images to R2 object storage.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVar(&flagVault, "vault", ".", "vault root directory")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose diagnostic logging")
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
}

// loadConfig reads the effective config, honoring --config and --debug.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no config found at %s; run 'witch init'", path)
		}
		return nil, err
	}
	if flagDebug {
		cfg.Debug = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(os.Stderr, cfg.Debug)
}
