package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sapienskid/witch/internal/cli/output"
	"github.com/sapienskid/witch/internal/config"
	"github.com/sapienskid/witch/internal/ghost"
	"github.com/sapienskid/witch/internal/publish"
	"github.com/sapienskid/witch/internal/storage"
	"github.com/sapienskid/witch/internal/vault"
)

var publishCmd = &cobra.Command{
	Use:   "publish <note>",
	Short: "Publish a note to Ghost, creating or updating by slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.SiteURL == "" || cfg.AdminAPIKey == "" {
			return errors.New("configure site_url and admin_api_key first (see 'witch init')")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, err := newPublisher(ctx, cfg)
		if err != nil {
			return err
		}

		outcome, err := p.Publish(ctx, args[0])
		if err != nil {
			var apiErr *ghost.APIError
			if errors.As(err, &apiErr) && apiErr.IsValidation() {
				return fmt.Errorf("ghost rejected the post: %w", apiErr)
			}
			return err
		}

		if outcome.Uploaded > 0 {
			output.Info("Uploaded %d image%s to R2\n", outcome.Uploaded, plural(outcome.Uploaded))
		}
		switch outcome.Action {
		case publish.ActionUpdated:
			output.Success("Post %q updated on Ghost (slug: %s)\n", outcome.Title, outcome.Slug)
		default:
			output.Success("Post %q published to Ghost (slug: %s)\n", outcome.Title, outcome.Slug)
		}
		return nil
	},
}

// newPublisher builds the full pipeline from config; shared with the
// upload command.
func newPublisher(ctx context.Context, cfg *config.Config) (*publish.Publisher, error) {
	lg := newLogger(cfg)
	graph, err := vault.Open(flagVault)
	if err != nil {
		return nil, err
	}
	var uploader storage.Uploader
	if cfg.R2.Ready() {
		r2, err := storage.NewR2(ctx, cfg.R2)
		if err != nil {
			return nil, err
		}
		uploader = r2
	}
	client := ghost.NewClient(cfg.SiteURL, cfg.AdminAPIKey, lg)
	return publish.New(cfg, graph, uploader, client, lg), nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
