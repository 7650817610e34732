// Command expire marks active listings whose expiry date has passed as
// expired. It never deletes and is safe to run repeatedly; schedule it
// from an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/classifieds-backend/internal/adapter/postgres"
	categoryrepo "github.com/heartmarshall/classifieds-backend/internal/adapter/postgres/category"
	listingrepo "github.com/heartmarshall/classifieds-backend/internal/adapter/postgres/listing"
	"github.com/heartmarshall/classifieds-backend/internal/app"
	"github.com/heartmarshall/classifieds-backend/internal/config"
	"github.com/heartmarshall/classifieds-backend/internal/service/listing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// The sweep touches no images, so no image store is wired.
	svc := listing.NewService(logger, listingrepo.New(pool), categoryrepo.New(pool), nil, listing.Options{TTL: cfg.Listing.TTL})

	if _, err := svc.ExpireSweep(ctx); err != nil {
		logger.Error("expire sweep failed", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}
}
