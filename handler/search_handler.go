package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projeto-bia/bia-be/service"
	"github.com/projeto-bia/bia-be/types"
)

type SearchHandler struct {
	index *service.IndexService
}

func NewSearchHandler(index *service.IndexService) *SearchHandler {
	return &SearchHandler{
		index: index,
	}
}

// HandleSearch answers GET /documents/search?q=...&k=... with the raw
// nearest chunks, most similar first.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Missing query parameter q",
		})
		return
	}
	k, err := strconv.Atoi(c.DefaultQuery("k", "3"))
	if err != nil || k <= 0 {
		k = service.DefaultContextK
	}

	results, err := h.index.Search(c.Request.Context(), query, k)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Search failed",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   results,
	})
}
