package user

import (
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/pkg/apperr"
	"bitwise74/filestore-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errInvalidBody = apperr.Validation("Invalid request body")

type registerBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserRegister creates an account. The role defaults to viewer.
func UserRegister(c *gin.Context, d *internal.Deps) {
	var data registerBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Error(c, errInvalidBody)
		return
	}

	u, err := d.Auth.Register(c.Request.Context(), data.Email, data.Password, data.Role)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"user":    u,
	})
}
