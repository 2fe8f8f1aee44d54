package user

import (
	"bitwise74/filestore-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserMe returns the identity carried by the caller's token
func UserMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user": middleware.Principal(c),
	})
}
