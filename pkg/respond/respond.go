// Package respond turns service errors into HTTP responses
package respond

import (
	"bitwise74/filestore-api/pkg/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error writes the error body for err and aborts the chain. Errors that
// aren't part of the apperr set are logged and hidden behind a 500.
func Error(c *gin.Context, err error) {
	requestID := c.GetString("requestID")
	kind := apperr.KindOf(err)

	if kind == apperr.KindInternal {
		fields := []zap.Field{
			zap.Error(err),
			zap.String("requestID", requestID),
			zap.String("path", c.FullPath()),
		}
		if userID, ok := c.Get("userID"); ok {
			fields = append(fields, zap.Any("userID", userID))
		}

		zap.L().Error("Request failed", fields...)
	}

	c.AbortWithStatusJSON(kind.Status(), gin.H{
		"error":     apperr.Message(err),
		"requestID": requestID,
	})
}
