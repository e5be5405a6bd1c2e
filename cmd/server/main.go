package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"

	"swing_backend/internal/app/di"
	"swing_backend/internal/app/router"
	swinghandler "swing_backend/internal/feature/swing/transport/handler"
	symbolhandler "swing_backend/internal/feature/symbollist/transport/handler"
	"swing_backend/internal/platform/config"
	platformdb "swing_backend/internal/platform/db"
	platformhandler "swing_backend/internal/platform/http/handler"
	"swing_backend/internal/platform/metrics"
	platformredis "swing_backend/internal/platform/redis"
	"swing_backend/internal/shared/ratelimiter"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env はローカル開発用。無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("SWING_CONFIG"))
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "text" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.OpenDB()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(ctx, platformredis.LoadConfigFromEnv()); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	// Usecase / Handler
	priceRepo := di.NewPriceRepository(db, rdb, cfg)
	swingUC := di.NewSwingUsecase(cfg, priceRepo, rec)
	swingH := swinghandler.NewSwingHandler(swingUC)
	symbolH := symbolhandler.NewSymbolHandler(di.NewSymbolUsecase(db))

	checks := map[string]platformhandler.Check{"db": sqlDB.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	healthH := platformhandler.NewHealthHandler(0, checks)

	ropts := router.Options{
		Limiter:      ratelimiter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		AllowOrigins: cfg.Server.AllowOrigins,
	}
	if !cfg.Metrics.Disabled {
		ropts.MetricsPath = cfg.Metrics.Path
		ropts.Metrics = metrics.Handler(reg)
	}
	r := router.NewRouter(swingH, symbolH, healthH, ropts)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
