package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sapienskid/witch/internal/cli/output"
	"github.com/sapienskid/witch/internal/storage"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the effective config and test R2 connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		output.Info("Configuration:\n")
		output.Field("site_url", orUnset(cfg.SiteURL))
		output.Field("admin_api_key", masked(cfg.AdminAPIKey))
		output.Field("default_status", cfg.DefaultStatus)
		output.Field("default_author", orUnset(cfg.DefaultAuthor))
		output.Field("default_tags", orUnset(cfg.DefaultTags))
		output.Field("r2 upload", onOff(cfg.R2.Ready()))

		if !cfg.R2.Ready() {
			if cfg.R2.Enabled {
				output.Warn("R2 is enabled but not fully configured; uploads are disabled\n")
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r2, err := storage.NewR2(ctx, cfg.R2)
		if err != nil {
			return err
		}
		if err := r2.Check(ctx); err != nil {
			output.Error("R2 connection failed: %v\n", err)
			return err
		}
		output.Success("R2 connection OK (bucket %s)\n", cfg.R2.Bucket)
		return nil
	},
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

func masked(v string) string {
	if v == "" {
		return "(unset)"
	}
	return "(set)"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
