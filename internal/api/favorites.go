package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/internal/store"
)

type FavoriteHandler struct {
	store RecipeStore
}

func NewFavoriteHandler(store RecipeStore) *FavoriteHandler {
	return &FavoriteHandler{store: store}
}

// ListFavorites returns the favorite ids and the favorite recipes that
// match the current search term and filter
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"favorites": h.store.Favorites(),
		"recipes":   h.store.Filter(store.View{FavoritesOnly: true}),
	})
}

// ToggleFavorite flips the favorite state of a recipe id
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	h.store.ToggleFavorite(id)

	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"favorited": h.store.IsFavorite(id),
		"favorites": h.store.Favorites(),
	})
}
