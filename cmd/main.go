package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/bank/internal/bank"
	"github.com/tinoosan/bank/internal/config"
	httpapi "github.com/tinoosan/bank/internal/httpapi/v1"
	"github.com/tinoosan/bank/internal/storage/memory"
	pgstore "github.com/tinoosan/bank/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	var srvMux http.Handler
	var closeFn func()

	if cfg.DatabaseURL != "" {
		// Use Postgres store when a database URL is provided
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = func() { pg.Close() }
		if cfg.DevSeed {
			accs, err := pg.SeedDev(ctx)
			if err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logDevSeed(logger, "postgres", accs)
			}
		}
		srvMux = httpapi.New(pg, pg, logger).Handler()
		logger.Info("storage backend: postgres")
	} else {
		// Default to in-memory store with a small dev seed
		store := memory.New()
		if cfg.DevSeed {
			accs := []bank.Account{
				{ID: uuid.New(), Agency: 1, Number: 1001, Name: "Maria", BalanceMinor: 10000},
				{ID: uuid.New(), Agency: 1, Number: 1002, Name: "Jose", BalanceMinor: 2500},
				{ID: uuid.New(), Agency: 2, Number: 2001, Name: "Ana", BalanceMinor: 7300},
			}
			for _, a := range accs {
				store.SeedAccount(a)
			}
			logDevSeed(logger, "memory", accs)
		}
		srvMux = httpapi.New(store, store, logger).Handler()
		logger.Info("storage backend: memory")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srvMux,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bank service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// logDevSeed emits structured logs with the seeded account coordinates.
func logDevSeed(l *slog.Logger, backend string, accs []bank.Account) {
	for _, a := range accs {
		l.Info("DEV seed ("+backend+")", "id", a.ID.String(), "agency", a.Agency, "account", a.Number, "balance_minor", a.BalanceMinor)
	}
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(cfg config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)
	if strings.ToLower(cfg.LogFormat) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
