package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

type addItemRequest struct {
	Handle    string `json:"handle" binding:"required"`
	VariantID string `json:"variantId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartResponse struct {
	Items        []domain.LineItem `json:"items"`
	Count        int               `json:"count"`
	Total        string            `json:"total"`
	CurrencyCode string            `json:"currencyCode,omitempty"`
	CheckoutURL  string            `json:"checkoutUrl,omitempty"`
	SyncState    string            `json:"syncState"`
}

func toCartResponse(m *cart.Manager) cartResponse {
	resp := cartResponse{
		Items:     m.Items(),
		Count:     m.Count(),
		Total:     "0.00",
		SyncState: m.State().String(),
	}
	if resp.Items == nil {
		resp.Items = []domain.LineItem{}
	}
	if total, err := m.Total(); err == nil {
		resp.Total = total.Amount.StringFixed(2)
		resp.CurrencyCode = total.Currency
	}
	resp.CheckoutURL = m.CheckoutURL()
	return resp
}

func getCartHandler(carts *CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, ok := deviceFromContext(c)
		if !ok {
			return
		}
		m := carts.For(c.Request.Context(), deviceID)
		c.JSON(http.StatusOK, toCartResponse(m))
	}
}

func addItemHandler(carts *CartRegistry, catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, ok := deviceFromContext(c)
		if !ok {
			return
		}
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "handle, variantId and quantity are required"})
			return
		}
		if req.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}

		product, err := catalog.ProductByHandle(c.Request.Context(), req.Handle)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		variant := product.VariantByID(req.VariantID)
		if variant == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "variant not found"})
			return
		}

		m := carts.For(c.Request.Context(), deviceID)
		if err := m.AddToCart(c.Request.Context(), *product, *variant, req.Quantity); err != nil {
			if errors.Is(err, domain.ErrCurrencyMismatch) {
				c.JSON(http.StatusConflict, gin.H{"error": "cart items must share one currency"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(m))
	}
}

func updateItemHandler(carts *CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, ok := deviceFromContext(c)
		if !ok {
			return
		}
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		}

		m := carts.For(c.Request.Context(), deviceID)
		if err := m.UpdateQuantity(c.Request.Context(), c.Param("variantID"), *req.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(m))
	}
}

func removeItemHandler(carts *CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, ok := deviceFromContext(c)
		if !ok {
			return
		}
		m := carts.For(c.Request.Context(), deviceID)
		if err := m.RemoveFromCart(c.Request.Context(), c.Param("variantID")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(m))
	}
}

func clearCartHandler(carts *CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, ok := deviceFromContext(c)
		if !ok {
			return
		}
		m := carts.For(c.Request.Context(), deviceID)
		if err := m.ClearCart(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(m))
	}
}
