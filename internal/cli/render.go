package cli

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/util"
)

type renderOptions struct {
	poster   string
	backdrop string
	output   string
	seed     uint64
	info     imagepkg.PosterInfo
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a poster card from local image files",
		Example: `  poster render --poster art.jpg --title "Attack on Titan" \
    --subtitle "Spring 2013 • 25 Episodes" --makers "Wit Studio" \
    --score 85% --tags Action,Drama -o card.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			src, err := readSources(opts.poster, opts.backdrop)
			if err != nil {
				return err
			}
			assets, err := imagepkg.LoadAssets(root.cfg.Assets)
			if err != nil {
				return err
			}

			ropts := []imagepkg.Option{imagepkg.WithLogger(logger)}
			if opts.seed != 0 {
				ropts = append(ropts, imagepkg.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed))))
			}
			png, err := imagepkg.NewRenderer(assets, ropts...).Render(opts.info, src, root.cfg.Layout)
			if err != nil {
				return err
			}

			if err := util.WriteFile(opts.output, png); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			logger.Info("wrote poster", "path", opts.output, "bytes", len(png))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.poster, "poster", "", "poster image file (required)")
	f.StringVar(&opts.backdrop, "backdrop", "", "backdrop image file")
	f.StringVarP(&opts.output, "output", "o", "poster.png", "output PNG path")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for the accent colour (0 = random)")
	f.StringVar(&opts.info.Title, "title", "", "title (required)")
	f.StringVar(&opts.info.Subtitle, "subtitle", "", "subtitle line")
	f.StringSliceVar(&opts.info.Makers, "makers", nil, "studios, creators or companies")
	f.StringVar(&opts.info.Score, "score", "0%", "pre-formatted score")
	f.StringSliceVar(&opts.info.Tags, "tags", nil, "genre tags, in display order")
	_ = cmd.MarkFlagRequired("poster")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func readSources(posterPath, backdropPath string) (imagepkg.SourceImages, error) {
	var src imagepkg.SourceImages
	var err error
	if src.Poster, err = os.ReadFile(posterPath); err != nil {
		return src, fmt.Errorf("read poster: %w", err)
	}
	if backdropPath != "" {
		if src.Backdrop, err = os.ReadFile(backdropPath); err != nil {
			return src, fmt.Errorf("read backdrop: %w", err)
		}
	}
	return src, nil
}
