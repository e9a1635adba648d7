package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logging"
	"bookcatalog/internal/platform/postgres"
)

// seed inserts the sample books into the books table through the same
// service the API uses, so every row passes the same validation.
func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.DatabaseDSN, 5*time.Second)
	if err != nil {
		logger.Error("cannot connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	db := postgres.SQLDB(pool)
	defer db.Close()

	service := book.NewService(book.NewPostgresStore(db, cfg.DBTimeout), logger)

	existing, err := service.List(ctx)
	if err != nil {
		logger.Error("cannot list books", "error", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		logger.Info("books table is not empty, skipping seed", "total", len(existing))
		return
	}

	for _, b := range book.SeedData() {
		if _, err := service.Create(ctx, b); err != nil {
			logger.Error("cannot insert book", "title", b.Title, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("seed complete", "inserted", len(book.SeedData()))
}
