package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"allocation-backtest/internal/api"
	"allocation-backtest/internal/api/handlers"
	"allocation-backtest/internal/config"
	"allocation-backtest/internal/data"
	"allocation-backtest/internal/logger"
	"allocation-backtest/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadServer(os.Getenv("BACKTEST_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(cfg.Log.Development)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("api server failed", zap.Error(err))
	}
}

func run(cfg *config.Server, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The table is loaded once and shared read-only by every request.
	table, err := data.LoadReturns(cfg.Data.ReturnsFile)
	if err != nil {
		return fmt.Errorf("loading returns: %w", err)
	}
	timeframes, err := data.LoadTimeframes(cfg.Data.TimeframesFile)
	if err != nil {
		return fmt.Errorf("loading timeframes: %w", err)
	}
	log.Info("historical returns loaded",
		zap.String("file", cfg.Data.ReturnsFile),
		zap.Int("first_year", table.FirstYear()+1),
		zap.Int("last_year", table.LastYear()),
		zap.Int("timeframes", len(timeframes)),
	)

	store, closeStore, err := newResultStore(ctx, cfg.Results, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(cfg, &handlers.Deps{
		Table:       table,
		Timeframes:  timeframes,
		ScenarioDir: cfg.Data.ScenarioDir,
		Store:       store,
		Metrics:     reg,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting API server", zap.String("addr", srv.Addr))
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

	log.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newResultStore uses redis when an address is configured, otherwise an
// in-process store with a background sweeper.
func newResultStore(ctx context.Context, cfg config.ResultsConfig, log *zap.Logger) (data.ResultStore, func(), error) {
	if cfg.RedisAddr == "" {
		mem := data.NewMemoryStore(cfg.TTL)
		go mem.RunSweeper(ctx, cfg.SweepInterval)
		log.Info("using in-memory result store", zap.Duration("ttl", cfg.TTL))
		return mem, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Info("using redis result store", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.TTL))
	return data.NewRedisStore(client, cfg.TTL), func() { _ = client.Close() }, nil
}
