// Command stockcheckout is the admin entry point of the checkout core.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/stockcheckout/internal/cache"
	"github.com/nikolayk812/stockcheckout/internal/config"
	"github.com/nikolayk812/stockcheckout/internal/metrics"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/nikolayk812/stockcheckout/internal/repository"
	"github.com/nikolayk812/stockcheckout/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "stockcheckout",
		Short:         "Checkout and stock reservation admin tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		migrateCmd(&flags),
		resetStockCmd(&flags),
		releaseStockCmd(&flags),
		cartCmd(&flags),
		checkoutCmd(&flags),
		ordersCmd(&flags),
		methodsCmd(&flags),
	)

	return cmd
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return logger
}

// app holds the wired services of one command run.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	redis    *redis.Client
	registry *prometheus.Registry

	carts    *service.CartService
	checkout *service.CheckoutService
	stock    *service.StockService
	orders   *service.OrderService
	methods  *service.MethodService
}

func loadConfig(flags *globalFlags) (*config.Config, *slog.Logger, error) {
	logger := newLogger(flags.logLevel)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, logger, nil
}

func loadApp(ctx context.Context, flags *globalFlags) (*app, error) {
	cfg, logger, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	cur, err := cfg.StoreCurrency()
	if err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolCfg.MaxConns = cfg.Database.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		registry: prometheus.NewRegistry(),
	}

	var snapshotCache port.SnapshotCache
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		snapshotCache = cache.NewRedisSnapshotCache(a.redis, cfg.Redis.SnapshotTTL)
	}

	m := metrics.NewCheckout(a.registry)
	uow := repository.NewUnitOfWork(pool, cfg.Database.LockTimeout)
	products := repository.NewProduct(pool)

	a.carts = service.NewCartService(products, repository.NewCart(pool), snapshotCache, cur, logger)
	a.checkout = service.NewCheckoutService(service.CheckoutDeps{
		UnitOfWork: uow,
		Drafts:     service.NewDraftManager(repository.NewDraft(pool), m, logger),
		Carts:      a.carts,
		Cache:      snapshotCache,
		Currency:   cur,
		Metrics:    m,
		Logger:     logger,
	})
	a.stock = service.NewStockService(uow, products, m, logger)
	a.orders = service.NewOrderService(repository.NewOrder(pool))
	a.methods = service.NewMethodService(repository.NewMethod(pool))

	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close failed", "error", err)
		}
	}
	a.pool.Close()
}

// serveMetrics exposes the registry until ctx is done. It is a no-op without metrics.addr.
func (a *app) serveMetrics(ctx context.Context) {
	if a.cfg.Metrics.Addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.registry))

	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		a.logger.Info("serving metrics", "addr", a.cfg.Metrics.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
}
