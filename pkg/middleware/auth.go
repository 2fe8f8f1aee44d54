package middleware

import (
	"bitwise74/filestore-api/pkg/respond"
	"bitwise74/filestore-api/pkg/security"

	"github.com/gin-gonic/gin"
)

// NewAuthMiddleware rejects requests without a valid bearer token. When
// roles are given the token's role must be one of them.
func NewAuthMiddleware(g *security.Gate, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			p   security.Principal
			err error
		)

		if len(roles) == 0 {
			p, err = g.RequireAuth(c.Request)
		} else {
			p, err = g.RequireRole(c.Request, roles...)
		}

		if err != nil {
			respond.Error(c, err)
			return
		}

		c.Set("principal", p)
		c.Set("userID", p.ID)
		c.Next()
	}
}

// Principal returns the principal stored by NewAuthMiddleware
func Principal(c *gin.Context) security.Principal {
	return c.MustGet("principal").(security.Principal)
}
