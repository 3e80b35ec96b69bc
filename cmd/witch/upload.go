package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sapienskid/witch/internal/cli/output"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <note>",
	Short: "Upload a note's embedded images to R2 and rewrite the note in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.R2.Ready() {
			return errors.New("enable R2 and fill all credentials in the config first")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, err := newPublisher(ctx, cfg)
		if err != nil {
			return err
		}
		count, err := p.UploadImages(ctx, args[0])
		if err != nil {
			return err
		}
		if count == 0 {
			output.Info("No local images were uploaded to R2\n")
			return nil
		}
		output.Success("Replaced %d image%s with R2 URLs\n", count, plural(count))
		return nil
	},
}
