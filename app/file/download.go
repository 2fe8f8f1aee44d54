package file

import (
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/respond"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FileDownload streams the file's bytes as an attachment
func FileDownload(c *gin.Context, d *internal.Deps) {
	p := middleware.Principal(c)

	rc, entry, err := d.Files.Download(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, entry.Size, entry.MimeType, rc, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": entry.Name}),
	})
}
