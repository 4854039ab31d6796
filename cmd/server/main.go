package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/AyushiKadu/Expense-Tracker/internal/auth"
	"github.com/AyushiKadu/Expense-Tracker/internal/cache"
	"github.com/AyushiKadu/Expense-Tracker/internal/config"
	"github.com/AyushiKadu/Expense-Tracker/internal/events"
	"github.com/AyushiKadu/Expense-Tracker/internal/server"
	"github.com/AyushiKadu/Expense-Tracker/internal/service"
	"github.com/AyushiKadu/Expense-Tracker/internal/storage/sqlite"
	"github.com/AyushiKadu/Expense-Tracker/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	ledgerCache := newCache(cfg)
	if closer, ok := ledgerCache.(io.Closer); ok {
		defer closer.Close()
	}

	publisher := newPublisher(cfg)
	defer publisher.Close()

	ledger := service.NewLedgerService(store, ledgerCache, publisher, cfg.Roster)

	var (
		authSvc    *service.AuthService
		jwtManager *auth.JWTManager
	)
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
		authSvc = service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
		slog.Info("Accounts enabled", "token_ttl", cfg.TokenTTL)
	}

	api := server.New(ledger, authSvc, jwtManager)

	// h2c lets gRPC-style HTTP/2 clients connect without TLS; plain
	// HTTP/1.1 clients are unaffected.
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h2c.NewHandler(api.Handler(), &http2.Server{}),
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Server starting", "address", httpServer.Addr, "roster", cfg.Roster)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func newCache(cfg *config.Config) cache.Cache {
	if cfg.RedisAddr != "" {
		slog.Info("Using redis ledger cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		return cache.NewRedisCache(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
	}
	slog.Info("Using in-memory ledger cache", "ttl", cfg.CacheTTL)
	return cache.NewInMemoryCache(cfg.CacheTTL)
}

func newPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		// The ledger works without a broker; downstream consumers just
		// miss events until the next restart.
		slog.Warn("AMQP unavailable, events disabled", "error", err)
		return events.NopPublisher{}
	}
	slog.Info("Event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return publisher
}
