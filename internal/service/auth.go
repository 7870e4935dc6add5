package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/internal/model"
	"github.com/pageza/recipebox/internal/types"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrSessionEnded = errors.New("session has ended")
)

// SessionStore is the part of the recipe store the auth service drives
type SessionStore interface {
	Login(username, email, password string) model.User
	Signup(username, email, password string) model.User
	Logout()
	User() (model.User, bool)
}

// AuthService starts and ends store sessions and issues session tokens.
// Tokens only bind a request to the store's current ephemeral user; no
// password is ever verified.
type AuthService struct {
	store     SessionStore
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewAuthService(store SessionStore, jwtSecret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		now:       time.Now,
		logger:    logger.Named("auth"),
	}
}

// Login starts a session and returns the new user with its token
func (s *AuthService) Login(username, email, password string) (model.User, string, error) {
	user := s.store.Login(username, email, password)
	return s.issue(user)
}

// Signup starts a session exactly like Login
func (s *AuthService) Signup(username, email, password string) (model.User, string, error) {
	user := s.store.Signup(username, email, password)
	return s.issue(user)
}

// Logout ends the current session
func (s *AuthService) Logout() {
	s.store.Logout()
}

func (s *AuthService) issue(user model.User) (model.User, string, error) {
	token, err := s.GenerateToken(user)
	if err != nil {
		return model.User{}, "", err
	}
	s.logger.Info("session started", zap.String("user_id", user.ID))
	return user, token, nil
}

// GenerateToken signs a session token for user
func (s *AuthService) GenerateToken(user model.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken checks the signature and expiry of tokenString and that it
// belongs to the store's current user
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	current, ok := s.store.User()
	if !ok || current.ID != claims.UserID {
		return nil, ErrSessionEnded
	}
	return claims, nil
}
