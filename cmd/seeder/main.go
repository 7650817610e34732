// Command seeder upserts the category catalog by slug. Without a catalog
// file it loads the built-in marketplace categories.
//
// Flags:
//
//	--catalog        path to a YAML catalog (default: built-in catalog)
//	--dry-run        validate the catalog without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/classifieds-backend/internal/adapter/postgres"
	categoryrepo "github.com/heartmarshall/classifieds-backend/internal/adapter/postgres/category"
	"github.com/heartmarshall/classifieds-backend/internal/app"
	"github.com/heartmarshall/classifieds-backend/internal/app/seeder"
	"github.com/heartmarshall/classifieds-backend/internal/config"
)

var _ seeder.CategoryUpserter = (*categoryrepo.Repo)(nil)

func main() {
	catalogFlag := flag.String("catalog", "", "path to a YAML catalog (default: built-in)")
	dryRunFlag := flag.Bool("dry-run", false, "validate the catalog without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *catalogFlag != "" {
		seederCfg.CatalogPath = *catalogFlag
	}

	catalog := seeder.DefaultCatalog()
	if seederCfg.CatalogPath != "" {
		catalog, err = seeder.LoadCatalog(seederCfg.CatalogPath)
		if err != nil {
			logger.Error("load catalog", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, logger, appCfg.Database, *seederCfg, catalog); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
}

// run connects to the database unless this is a dry run, which only
// validates the catalog.
func run(ctx context.Context, logger *slog.Logger, db config.DatabaseConfig, cfg seeder.Config, catalog []seeder.CatalogEntry) error {
	var repo seeder.CategoryUpserter
	if !cfg.DryRun {
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		repo = categoryrepo.New(pool)
	}

	_, err := seeder.New(logger, repo, cfg).Run(ctx, catalog)
	return err
}
