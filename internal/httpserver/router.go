package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

// Deps carries the services the router needs.
type Deps struct {
	Catalog catalogService
	Carts   *CartRegistry
	// AllowedOrigins configures CORS for the browser frontend.
	AllowedOrigins []string
}

// catalogService is the router's view of catalog browsing.
type catalogService interface {
	Products(ctx context.Context, limit int) ([]domain.Product, error)
	ProductByHandle(ctx context.Context, handle string) (*domain.Product, error)
	Collections(ctx context.Context) ([]domain.Collection, error)
	CollectionProducts(ctx context.Context, collectionID string) ([]domain.Product, error)
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Catalog == nil || deps.Carts == nil {
		return nil, errors.New("httpserver: catalog and carts are required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/products", productsHandler(deps.Catalog))
		api.GET("/products/:handle", productHandler(deps.Catalog))
		api.GET("/collections", collectionsHandler(deps.Catalog))
		api.GET("/collections/:id/products", collectionProductsHandler(deps.Catalog))

		carts := api.Group("/cart", deviceMiddleware())
		{
			carts.GET("", getCartHandler(deps.Carts))
			carts.DELETE("", clearCartHandler(deps.Carts))
			carts.POST("/items", addItemHandler(deps.Carts, deps.Catalog))
			carts.PATCH("/items/:variantID", updateItemHandler(deps.Carts))
			carts.DELETE("/items/:variantID", removeItemHandler(deps.Carts))
		}
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	cfg.AllowOrigins = origins
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type"}
	cfg.AllowCredentials = true
	return cfg
}
