package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/internal/types"
)

// UIHandler drives the transient search and filter state
type UIHandler struct {
	store RecipeStore
}

func NewUIHandler(store RecipeStore) *UIHandler {
	return &UIHandler{store: store}
}

func (h *UIHandler) SetSearchTerm(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.SetSearchTerm(req.Term)
	c.JSON(http.StatusOK, gin.H{"searchTerm": req.Term})
}

// SetActiveFilter accepts any value; unknown categories are stored as sent
func (h *UIHandler) SetActiveFilter(c *gin.Context) {
	var req types.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.SetActiveFilter(req.Filter)
	c.JSON(http.StatusOK, gin.H{"activeFilter": req.Filter})
}
