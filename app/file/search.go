package file

import (
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/respond"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func FileSearch(c *gin.Context, d *internal.Deps) {
	p := middleware.Principal(c)

	files, err := d.Files.Search(c.Request.Context(), p.ID, strings.TrimSpace(c.Query("q")))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}
