package file

import (
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

func FileList(c *gin.Context, d *internal.Deps) {
	p := middleware.Principal(c)

	files, err := d.Files.List(c.Request.Context(), p.ID, parentParam(c.Query("parentId")))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}
