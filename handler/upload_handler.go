package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projeto-bia/bia-be/service"
	"github.com/projeto-bia/bia-be/types"
)

type UploadHandler struct {
	files *service.FileService
}

func NewUploadHandler(files *service.FileService) *UploadHandler {
	return &UploadHandler{
		files: files,
	}
}

// UploadDocumentHandler accepts a multipart PDF and ingests it into the
// document index.
func (h *UploadHandler) UploadDocumentHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Missing file field",
		})
		return
	}

	result, err := h.files.UploadFile(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   result,
	})
}
