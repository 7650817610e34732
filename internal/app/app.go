package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/classifieds-backend/internal/adapter/postgres"
	categoryrepo "github.com/heartmarshall/classifieds-backend/internal/adapter/postgres/category"
	listingrepo "github.com/heartmarshall/classifieds-backend/internal/adapter/postgres/listing"
	"github.com/heartmarshall/classifieds-backend/internal/adapter/s3store"
	"github.com/heartmarshall/classifieds-backend/internal/auth"
	"github.com/heartmarshall/classifieds-backend/internal/config"
	"github.com/heartmarshall/classifieds-backend/internal/service/category"
	"github.com/heartmarshall/classifieds-backend/internal/service/listing"
	"github.com/heartmarshall/classifieds-backend/internal/transport/middleware"
	"github.com/heartmarshall/classifieds-backend/internal/transport/rest"
)

// Run is the server entry point. It wires configuration, storage, services
// and HTTP transport, then serves until ctx is cancelled and shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	images, err := s3store.New(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("init image store: %w", err)
	}
	if cfg.Storage.CreateBucket {
		if err := images.EnsureBucket(ctx); err != nil {
			return err
		}
	}

	// Repositories
	txm := postgres.NewTxManager(pool)
	categories := categoryrepo.New(pool)
	listings := listingrepo.New(pool)

	// Services
	categorySvc := category.NewService(logger, categories, txm)
	listingSvc := listing.NewService(logger, listings, categories, images, listing.Options{
		TTL:             cfg.Listing.TTL,
		MaxImages:       cfg.Listing.MaxImages,
		DefaultPageSize: cfg.Listing.DefaultPageSize,
		SearchPageSize:  cfg.Listing.SearchPageSize,
		MaxPageSize:     cfg.Listing.MaxPageSize,
	})

	// Transport
	mux := http.NewServeMux()
	rest.RegisterRoutes(mux, rest.Handlers{
		Health: rest.NewHealthHandler(Version,
			rest.Component{Name: "database", Check: pool, Required: true},
			rest.Component{Name: "storage", Check: images},
		),
		Categories: rest.NewCategoryHandler(categorySvc, logger),
		Listings:   rest.NewListingHandler(listingSvc, logger, cfg.Listing.MaxImages, cfg.Listing.MaxUploadBytes),
	})

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	chain := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		chain = append(chain, limiter.ByMethod(cfg.RateLimit.ReadPerMinute, cfg.RateLimit.WritePerMinute))
	}
	chain = append(chain, middleware.Auth(tokens))

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           middleware.Chain(chain...)(mux),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, logger, cfg.Server)
}

// serve runs srv until it fails or ctx is done, then drains in-flight
// requests within the configured shutdown timeout.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger, cfg config.ServerConfig) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
