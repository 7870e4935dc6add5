package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipebox/config"
	"github.com/pageza/recipebox/internal/database"
	"github.com/pageza/recipebox/internal/middleware"
	"github.com/pageza/recipebox/internal/seed"
	"github.com/pageza/recipebox/internal/server"
	"github.com/pageza/recipebox/internal/service"
	"github.com/pageza/recipebox/internal/slot"
	"github.com/pageza/recipebox/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Seeds a fresh recipe collection, restores the session subset from the
configured slot and serves the API until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Info("starting recipebox",
		zap.String("env", string(cfg.Env)),
		zap.String("slot_backend", cfg.SlotBackend),
		zap.String("ownership", cfg.OwnershipPolicy),
		zap.String("category_mode", cfg.CategoryMode),
	)

	slt, err := slot.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open slot: %w", err)
	}
	defer func() { err = multierr.Append(err, slt.Close()) }()

	s, persister := store.Open(ctx, slt, storeOptions(cfg)...)
	defer func() {
		persister.Close()
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = multierr.Append(err, persister.Flush(flushCtx))
	}()

	auth := service.NewAuthService(s, cfg.JWTSecret, cfg.TokenTTL, logger)

	limiter, redisClient := createLimiter(ctx, cfg)
	if redisClient != nil {
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
	}

	srv := server.New(cfg, s, auth, limiter, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	if cfg.SlotFlushInterval > 0 {
		g.Go(func() error {
			flushPeriodically(gctx, persister, cfg.SlotFlushInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func storeOptions(cfg *config.Config) []store.Option {
	opts := []store.Option{
		store.WithLogger(logger),
		store.WithSeeder(seed.New(seed.WithCount(cfg.SeedCount))),
	}
	if cfg.OwnershipPolicy == config.OwnershipEnforced {
		opts = append(opts, store.WithOwnershipPolicy(store.OwnershipEnforced))
	}
	if cfg.CategoryMode == config.CategoryTags {
		opts = append(opts, store.WithCategoryMode(store.CategoryTags))
	}
	return opts
}

// createLimiter connects to Redis when a creation limit is configured.
// Without Redis the API runs unlimited.
func createLimiter(ctx context.Context, cfg *config.Config) (*middleware.RateLimiter, *redis.Client) {
	if cfg.RecipeCreateLimit == 0 {
		return nil, nil
	}
	client, err := database.NewRedisClient(ctx, cfg, logger)
	if err != nil {
		logger.Warn("recipe creation rate limit disabled", zap.Error(err))
		return nil, nil
	}
	return middleware.NewRecipeCreationRateLimiter(client, cfg.RecipeCreateLimit, logger), client
}

func flushPeriodically(ctx context.Context, p *store.Persister, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Flush(ctx); err != nil {
				logger.Warn("periodic flush failed", zap.Error(err))
			}
		}
	}
}
