package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/internal/api"
	"github.com/pageza/recipebox/internal/middleware"
	"github.com/pageza/recipebox/internal/service"
)

// Handlers groups the API handlers mounted by SetupRouter
type Handlers struct {
	Auth      *api.AuthHandler
	Recipes   *api.RecipeHandler
	Favorites *api.FavoriteHandler
	UI        *api.UIHandler
	Events    *api.EventsHandler
}

// NewHandlers builds every handler on top of one store
func NewHandlers(store api.RecipeStore, authService service.IAuthService) Handlers {
	return Handlers{
		Auth:      api.NewAuthHandler(authService, store),
		Recipes:   api.NewRecipeHandler(store),
		Favorites: api.NewFavoriteHandler(store),
		UI:        api.NewUIHandler(store),
		Events:    api.NewEventsHandler(store),
	}
}

// Options configures SetupRouter. CreateLimiter may be nil.
type Options struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	CreateLimiter  *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, validator middleware.TokenValidator, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/health", api.HealthCheck)

	v1.Use(middleware.SessionMiddleware(validator))

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/logout", h.Auth.Logout)
	}
	v1.GET("/session", h.Auth.GetSession)

	// Recipe routes
	recipes := v1.Group("/recipes")
	{
		recipes.GET("", h.Recipes.ListRecipes)
		recipes.GET("/:id", h.Recipes.GetRecipe)
		if opts.CreateLimiter != nil {
			recipes.POST("", opts.CreateLimiter.Middleware(), h.Recipes.CreateRecipe)
		} else {
			recipes.POST("", h.Recipes.CreateRecipe)
		}
		recipes.PUT("/:id", h.Recipes.UpdateRecipe)
		recipes.DELETE("/:id", h.Recipes.DeleteRecipe)
	}

	// Favorite routes
	favorites := v1.Group("/favorites")
	{
		favorites.GET("", h.Favorites.ListFavorites)
		favorites.POST("/:id", h.Favorites.ToggleFavorite)
	}

	// UI state routes
	ui := v1.Group("/ui")
	{
		ui.PUT("/search", h.UI.SetSearchTerm)
		ui.PUT("/filter", h.UI.SetActiveFilter)
	}

	v1.GET("/events", h.Events.Stream)

	return router
}
