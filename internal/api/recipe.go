package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/internal/middleware"
	"github.com/pageza/recipebox/internal/store"
	"github.com/pageza/recipebox/internal/types"
)

type RecipeHandler struct {
	store RecipeStore
}

func NewRecipeHandler(store RecipeStore) *RecipeHandler {
	return &RecipeHandler{store: store}
}

// ListRecipes returns the recipes matching the current search term and
// filter. mine=true and favorites=true narrow the view.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	view := store.View{
		MineOnly:      queryBool(c, "mine"),
		FavoritesOnly: queryBool(c, "favorites"),
	}
	recipes := h.store.Filter(view)

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, ok := h.store.Recipe(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe":     recipe,
		"isFavorite": h.store.IsFavorite(recipe.ID),
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, ok := h.store.AddRecipe(req.Draft())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// UpdateRecipe applies a partial update. The store does not report whether
// anything matched, so the answer is the same either way.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id := c.Param("id")
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := req.Patch()
	if patch.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	h.store.UpdateRecipe(middleware.CallerID(c), id, patch)

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"id":      id,
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	h.store.DeleteRecipe(middleware.CallerID(c), id)

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
