package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/internal/model"
	"github.com/pageza/recipebox/internal/service"
	"github.com/pageza/recipebox/internal/types"
)

// AuthHandler serves login, signup, logout and the session read
type AuthHandler struct {
	authService service.IAuthService
	store       RecipeStore
}

func NewAuthHandler(authService service.IAuthService, store RecipeStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// AuthResponse is returned by login and signup
type AuthResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	h.startSession(c, http.StatusOK, h.authService.Login)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	h.startSession(c, http.StatusCreated, h.authService.Signup)
}

func (h *AuthHandler) startSession(c *gin.Context, status int, start func(username, email, password string) (model.User, string, error)) {
	var req types.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := start(req.Username, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(status, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, sessionView(h.store.Snapshot()))
}
