package file

import (
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/internal/service"
	"bitwise74/filestore-api/pkg/apperr"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/respond"
	"bitwise74/filestore-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func FileUpload(c *gin.Context, d *internal.Deps) {
	p := middleware.Principal(c)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError

		switch {
		case errors.As(err, &tooLarge):
			respond.Error(c, apperr.ErrTooLarge)
		case errors.Is(err, http.ErrMissingFile):
			respond.Error(c, validators.ErrNoFile)
		default:
			respond.Error(c, errInvalidBody)
		}
		return
	}

	f, contentType, err := validators.FileValidator(fh, d.Settings.MaxUploadSize)
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer f.Close()

	entry, err := d.Files.Upload(c.Request.Context(), p.ID, service.UploadInput{
		ParentID: parentParam(c.PostForm("parentId")),
		Name:     fh.Filename,
		MimeType: contentType,
		Body:     f,
		Size:     fh.Size,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	zap.L().Debug("File uploaded",
		zap.String("id", entry.ID),
		zap.Int64("size", entry.Size),
		zap.Uint("userID", p.ID),
	)

	c.JSON(http.StatusOK, gin.H{
		"id":   entry.ID,
		"name": entry.Name,
		"size": entry.Size,
		"type": entry.MimeType,
	})
}
