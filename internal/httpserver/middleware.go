package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const deviceCtxKey ctxKey = "device"

// deviceCookie identifies one browser across restarts; it scopes the
// persisted cart state.
const (
	deviceCookie       = "sf_device"
	deviceCookieMaxAge = 180 * 24 * 60 * 60
)

// deviceMiddleware reads the device cookie, issuing a fresh id when absent,
// and makes the id available on the request context.
func deviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, err := c.Cookie(deviceCookie)
		if err != nil || deviceID == "" {
			deviceID = uuid.NewString()
			c.SetCookie(deviceCookie, deviceID, deviceCookieMaxAge, "/", "", false, true)
		}
		ctx := context.WithValue(c.Request.Context(), deviceCtxKey, deviceID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func deviceFromContext(c *gin.Context) (string, bool) {
	deviceID, ok := c.Request.Context().Value(deviceCtxKey).(string)
	if !ok || deviceID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "device not resolved"})
		return "", false
	}
	return deviceID, true
}
