package root

import (
	"bitwise74/filestore-api/db"
	"bitwise74/filestore-api/internal"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// Health checks the database on every uncached call
func Health(c *gin.Context, d *internal.Deps) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)

	if err := db.Ping(ctx, d.DB); err != nil {
		zap.L().Warn("Database health check failed", zap.Error(err))

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": now,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": now,
	})
}
