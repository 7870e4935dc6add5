package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/internal/types"
)

// Context keys set by the session middleware
const (
	ContextUserID     = "user_id"
	ContextUsername   = "username"
	ContextTokenError = "token_error"
)

var errInvalidHeader = errors.New("invalid authorization header format")

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// SessionMiddleware resolves the caller from a bearer token when one is sent.
// Requests without a usable token continue anonymously: a malformed header,
// a bad signature or a token of an ended session leaves CallerID empty.
// ContextTokenError holds the reason a sent token was not used.
func SessionMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Set(ContextTokenError, errInvalidHeader)
			c.Next()
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.Set(ContextTokenError, err)
			c.Next()
			return
		}

		// Store user info in context
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// CallerID returns the user id resolved by SessionMiddleware, or ""
func CallerID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// TokenError returns why a sent bearer token was ignored, or nil
func TokenError(c *gin.Context) error {
	if v, ok := c.Get(ContextTokenError); ok {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}
