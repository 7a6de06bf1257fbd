package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/warmer"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a CSV listing product handles to warm")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[warm] ", log.LstdFlags|log.LUTC)

	if cfg.RedisAddr == "" {
		logger.Fatal("REDIS_ADDR is required: warming an in-memory cache has no effect")
	}
	cache := catalog.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))

	gw, err := gateway.NewHTTPClient(gateway.Config{
		BaseURL:     cfg.GatewayURL,
		AccessToken: cfg.GatewayToken,
		Timeout:     cfg.GatewayTimeout,
	})
	if err != nil {
		logger.Fatalf("init gateway client: %v", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	w := warmer.NewCSVWarmer(f, catalog.New(gw, cache, logger), logger)

	start := time.Now()
	count, err := w.Run(context.Background())
	if err != nil {
		logger.Fatalf("warm failed: %v", err)
	}

	fmt.Printf("Warmed %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
