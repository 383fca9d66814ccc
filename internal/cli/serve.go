package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/youruser/posterapp/internal/api"
	"github.com/youruser/posterapp/internal/config"
	imagepkg "github.com/youruser/posterapp/internal/image"
	"github.com/youruser/posterapp/internal/metadata"
	"github.com/youruser/posterapp/internal/util"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve poster cards over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts.cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	// Missing fonts or icon stop the server here rather than failing renders.
	assets, err := imagepkg.LoadAssets(cfg.Assets)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}

	var cache metadata.Cache = metadata.NullCache{}
	if cfg.Cache.RedisURL != "" {
		rc, err := metadata.NewRedisCache(cfg.Cache.RedisURL, cfg.Cache.TTL.Duration)
		if err != nil {
			return err
		}
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, metadata will not be cached", "err", err)
		} else {
			cache = rc
		}
	}

	fetcher := util.NewFetcher(cfg.Server.FetchTimeout.Duration)
	if cfg.TMDB.APIKey == "" {
		logger.Warn("TMDB_API_KEY is not set; /tv and /movie will fail")
	}

	h := &api.Handler{
		Anime:     metadata.NewMAL(cfg.MAL, fetcher.Client, cache, logger.WithPrefix("mal")),
		TMDB:      metadata.NewTMDB(cfg.TMDB, fetcher.Client, cache, logger.WithPrefix("tmdb")),
		Fetcher:   fetcher,
		Renderer:  imagepkg.NewRenderer(assets, imagepkg.WithLogger(logger.WithPrefix("render"))),
		Layout:    cfg.Layout,
		Logger:    logger,
		PublicURL: cfg.Server.PublicURL,
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewEngine(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", "http://localhost"+cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
