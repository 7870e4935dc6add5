package service

import (
	"github.com/pageza/recipebox/internal/model"
	"github.com/pageza/recipebox/internal/types"
)

// IAuthService defines the interface for session operations
type IAuthService interface {
	Login(username, email, password string) (model.User, string, error)
	Signup(username, email, password string) (model.User, string, error)
	Logout()
	ValidateToken(token string) (*types.TokenClaims, error)
}

var _ IAuthService = (*AuthService)(nil)
