// Package identity proves that a caller is an authenticated user and exposes
// that user's identity to downstream handlers. Two interchangeable providers
// exist: signed bearer tokens and cookie-backed server-side sessions.
package identity

import (
	"github.com/gin-gonic/gin"

	"skinvault/internal/model"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

type Provider interface {
	// Issue establishes the caller's authenticated identity after a
	// successful credential check. The token provider returns the signed
	// token; the session provider sets the cookie and returns "".
	Issue(c *gin.Context, user *model.User) (string, error)
	// Invalidate ends the caller's authenticated identity where the
	// provider holds server-side state.
	Invalidate(c *gin.Context) error
	// Middleware gates protected routes. It aborts unauthenticated
	// requests before the handler runs and stores the user id and
	// username in the gin context otherwise.
	Middleware() gin.HandlerFunc
}

func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func CurrentUsername(c *gin.Context) string {
	v, exists := c.Get(ContextUsernameKey)
	if !exists {
		return ""
	}
	name, _ := v.(string)
	return name
}
