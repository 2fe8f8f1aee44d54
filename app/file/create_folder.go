package file

import (
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/respond"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createFolderBody struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

func FileCreateFolder(c *gin.Context, d *internal.Deps) {
	p := middleware.Principal(c)

	var data createFolderBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Error(c, errInvalidBody)
		return
	}

	var parentID *string
	if data.ParentID != nil {
		parentID = parentParam(*data.ParentID)
	}

	folder, err := d.Files.CreateFolder(c.Request.Context(), p.ID, parentID, data.Name)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        folder.ID,
		"name":      folder.Name,
		"is_folder": folder.IsFolder,
		"parent_id": folder.ParentID,
	})
}
