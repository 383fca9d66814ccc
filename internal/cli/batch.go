package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/manifest"
	"github.com/youruser/posterapp/internal/util"
)

func newBatchCmd(root *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch <manifest.csv>",
		Short: "Render every poster listed in a CSV manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			entries, err := manifest.LoadFile(args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Dir(args[0])
			}
			assets, err := imagepkg.LoadAssets(root.cfg.Assets)
			if err != nil {
				return err
			}
			r := imagepkg.NewRenderer(assets, imagepkg.WithLogger(logger))

			var errs []error
			for _, e := range entries {
				out := e.OutputPath(outDir)
				if err := renderEntry(r, e, root.cfg.Layout, out); err != nil {
					logger.Error("render failed", "line", e.Line, "title", e.Info.Title, "err", err)
					errs = append(errs, fmt.Errorf("line %d: %w", e.Line, err))
					continue
				}
				logger.Info("wrote poster", "line", e.Line, "path", out)
			}
			logger.Info("batch done", "rendered", len(entries)-len(errs), "failed", len(errs))
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for relative outputs (default: the manifest's directory)")
	return cmd
}

func renderEntry(r *imagepkg.Renderer, e manifest.Entry, layout imagepkg.Config, out string) error {
	src, err := readSources(e.Poster, e.Backdrop)
	if err != nil {
		return err
	}
	png, err := r.Render(e.Info, src, layout)
	if err != nil {
		return err
	}
	return util.WriteFile(out, png)
}
