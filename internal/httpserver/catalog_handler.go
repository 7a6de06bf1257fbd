package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

const defaultProductLimit = 20

func productsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultProductLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = parsed
		}

		products, err := catalog.Products(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func productHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.ProductByHandle(c.Request.Context(), c.Param("handle"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func collectionsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		collections, err := catalog.Collections(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		if collections == nil {
			collections = []domain.Collection{}
		}
		c.JSON(http.StatusOK, gin.H{"collections": collections})
	}
}

func collectionProductsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.CollectionProducts(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
