package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logging"
	"bookcatalog/internal/platform/postgres"
	"bookcatalog/internal/server"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("cannot open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	service := book.NewService(store, logger)
	router := server.NewRouter(book.NewHTTPHandler(service), logger, cfg.MaxBodyBytes)

	if err := server.New(cfg.Addr, router, logger).Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openStore builds the configured backend and returns its cleanup.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (book.Store, func(), error) {
	if cfg.StoreDriver != config.DriverPostgres {
		var seed []book.Book
		if cfg.SeedBooks {
			seed = book.SeedData()
		}
		logger.Info("using in-memory store", "seeded", len(seed))
		return book.NewMemoryStore(seed), func() {}, nil
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN, cfg.DBTimeout)
	if err != nil {
		return nil, nil, err
	}
	db := postgres.SQLDB(pool)
	cleanup := func() {
		_ = db.Close()
		pool.Close()
	}

	if cfg.AutoMigrate {
		if err := postgres.Up(ctx, db); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	logger.Info("database connection OK", "dsn", postgres.RedactDSN(cfg.DatabaseDSN))
	return book.NewPostgresStore(db, cfg.DBTimeout), cleanup, nil
}
