package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/internal/model"
	"github.com/pageza/recipebox/internal/store"
)

// RecipeStore is the store surface the handlers read and drive
type RecipeStore interface {
	Snapshot() store.State
	Recipe(id string) (model.Recipe, bool)
	Favorites() []string
	IsFavorite(id string) bool
	Filter(v store.View) []model.Recipe
	AddRecipe(draft model.RecipeDraft) (model.Recipe, bool)
	UpdateRecipe(callerID, id string, patch model.RecipePatch)
	DeleteRecipe(callerID, id string)
	ToggleFavorite(recipeID string)
	SetSearchTerm(term string)
	SetActiveFilter(filter string)
	Subscribe(fn store.Listener) func()
}

var _ RecipeStore = (*store.RecipeStore)(nil)

// SessionView is the consumer facing read of session and UI state
type SessionView struct {
	User            *model.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	Favorites       []string    `json:"favorites"`
	SearchTerm      string      `json:"searchTerm"`
	ActiveFilter    string      `json:"activeFilter"`
	Categories      []string    `json:"categories"`
}

func sessionView(st store.State) SessionView {
	return SessionView{
		User:            st.User,
		IsAuthenticated: st.IsAuthenticated,
		Favorites:       st.Favorites,
		SearchTerm:      st.SearchTerm,
		ActiveFilter:    st.ActiveFilter,
		Categories:      model.Categories(),
	}
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "recipebox API is running",
	})
}
