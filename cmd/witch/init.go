package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sapienskid/witch/internal/cli/output"
	"github.com/sapienskid/witch/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path()
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		cfg := config.Default()
		if key := os.Getenv("GHOST_ADMIN_API_KEY"); key != "" {
			cfg.AdminAPIKey = key
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		output.Success("Wrote %s\n", path)
		output.Info("Fill in site_url and admin_api_key, then run 'witch check'.\n")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
}
