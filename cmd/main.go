package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentgrid/searchd/internal/adapters/cache"
	"github.com/talentgrid/searchd/internal/adapters/http/api"
	"github.com/talentgrid/searchd/internal/adapters/store"
	app "github.com/talentgrid/searchd/internal/app"
	"github.com/talentgrid/searchd/internal/config"
	"github.com/talentgrid/searchd/internal/domain/facet"
	"github.com/talentgrid/searchd/internal/domain/scoring"
	"github.com/talentgrid/searchd/internal/domain/suggest"
	"github.com/talentgrid/searchd/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	profiles, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to connect profile store", logger.Error(err))
		return
	}
	defer cleanup()

	results, err := buildCache(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to connect cache backing", logger.Error(err))
		return
	}

	svc := app.New(profiles,
		app.WithLogger(log.Named("search")),
		app.WithCache(results),
		app.WithScoringEngine(scoring.NewEngine(
			scoring.WithWeights(weightsFromConfig(cfg)),
			scoring.WithParallelism(cfg.ScoringParallelism),
		)),
		app.WithFacetAggregator(facet.NewAggregator(facet.WithMaxValues(cfg.FacetMaxValues))),
		app.WithSuggestionEngine(suggest.NewEngine(suggest.WithLimit(cfg.SuggestionLimit))),
	)
	defer func() {
		if err := svc.Close(); err != nil {
			log.Warn(context.Background(), "service close failed", logger.Error(err))
		}
	}()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildStore selects the Postgres-backed profile store when a database URL
// is configured, falling back to the in-memory store.
func buildStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info(ctx, "using in-memory profile store")
		return store.NewMemoryStore(), func() {}, nil
	}
	pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info(ctx, "using postgres profile store")
	return pg, pg.Close, nil
}

// buildCache selects the Redis cache backing when configured, falling back
// to the in-memory cache.
func buildCache(ctx context.Context, cfg *config.Config, log logger.Logger) (cache.Cache, error) {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if cfg.RedisURL == "" {
		log.Info(ctx, "using in-memory result cache", logger.Duration("ttl", ttl))
		return cache.NewMemoryCache(
			cache.WithTTL(ttl),
			cache.WithSweepInterval(time.Duration(cfg.CacheSweepSeconds)*time.Second),
		), nil
	}
	rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cache.WithRedisTTL(ttl))
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "using redis result cache", logger.Duration("ttl", ttl))
	return rc, nil
}

// weightsFromConfig overlays configured weight values on the defaults.
func weightsFromConfig(cfg *config.Config) scoring.Weights {
	w := scoring.DefaultWeights()
	if cfg.CompletionFactor > 0 {
		w.CompletionFactor = cfg.CompletionFactor
	}
	if cfg.SkillWeight > 0 {
		w.SkillWeight = cfg.SkillWeight
	}
	if cfg.IndustryWeight > 0 {
		w.IndustryWeight = cfg.IndustryWeight
	}
	if cfg.LocationBonus > 0 {
		w.LocationBonus = cfg.LocationBonus
	}
	if cfg.VerifiedBonus > 0 {
		w.VerifiedBonus = cfg.VerifiedBonus
	}
	if cfg.RecencyBonus > 0 {
		w.RecencyBonus = cfg.RecencyBonus
	}
	if cfg.RecencyWindowDays > 0 {
		w.RecencyWindow = time.Duration(cfg.RecencyWindowDays) * 24 * time.Hour
	}
	return w
}
