// Package cli implements the poster command line: an HTTP server (the
// default) and an offline render command.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/posterapp/internal/config"
)

type rootOptions struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "poster",
		Short:        "Render promotional poster cards for anime, series and films",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logger := newLogger(os.Stderr, parseLevel(cfg.Log.Level, opts.verbose))
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts.cfg)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to poster.toml (default $POSTER_CONFIG or ./poster.toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newBatchCmd(opts))
	return root
}
