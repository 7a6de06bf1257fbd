package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/gateway"
	"storefront/internal/httpserver"
	"storefront/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		pool  *pgxpool.Pool
		store session.Store
	)
	if cfg.DBConnString != "" {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		store = session.NewPostgres(pool, logger)
	} else {
		logger.Printf("no DB_DSN configured, using in-memory session store")
		store = session.NewMemory()
	}

	var cache catalog.Cache
	if cfg.RedisAddr != "" {
		cache = catalog.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		logger.Printf("no REDIS_ADDR configured, using in-memory catalog cache")
		cache = catalog.NewMemoryCache()
	}

	gw, err := gateway.NewHTTPClient(gateway.Config{
		BaseURL:     cfg.GatewayURL,
		AccessToken: cfg.GatewayToken,
		Timeout:     cfg.GatewayTimeout,
	})
	if err != nil {
		logger.Fatalf("init gateway client: %v", err)
	}

	catalogSvc := catalog.New(gw, cache, logger)
	carts := httpserver.NewCartRegistry(logger, gw, store)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		Catalog:        catalogSvc,
		Carts:          carts,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
