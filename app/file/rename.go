package file

import (
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/internal/service"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

type renameBody struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func FileRename(c *gin.Context, d *internal.Deps) {
	p := middleware.Principal(c)

	var data renameBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Error(c, service.ErrMissingFields)
		return
	}

	file, err := d.Files.Rename(c.Request.Context(), p.ID, data.ID, data.Name)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"file": file})
}
