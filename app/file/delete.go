package file

import (
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

type deleteBody struct {
	ID string `json:"id"`
}

// FileDelete removes a file, or a folder with everything inside it
func FileDelete(c *gin.Context, d *internal.Deps) {
	p := middleware.Principal(c)

	var data deleteBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Error(c, errInvalidBody)
		return
	}

	if err := d.Files.Delete(c.Request.Context(), p.ID, data.ID); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
