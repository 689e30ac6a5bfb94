package identity

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skinvault/internal/model"
	"skinvault/internal/session"
	"skinvault/internal/transport/http/response"
)

// UserLoader maps a stored user id back to a User. It returns nil with no
// error when the id no longer resolves.
type UserLoader func(ctx context.Context, id uint) (*model.User, error)

// SessionProvider authenticates requests by an opaque session cookie. Unlike
// the token provider it re-loads the user on every request and fails closed
// when the user row is gone.
type SessionProvider struct {
	store      session.Store
	loadUser   UserLoader
	ttl        time.Duration
	cookieName string
}

func NewSessionProvider(store session.Store, loadUser UserLoader, ttl time.Duration, cookieName string) *SessionProvider {
	return &SessionProvider{
		store:      store,
		loadUser:   loadUser,
		ttl:        ttl,
		cookieName: cookieName,
	}
}

func (p *SessionProvider) Issue(c *gin.Context, user *model.User) (string, error) {
	sessionID, err := p.store.Create(c.Request.Context(), user.ID, p.ttl)
	if err != nil {
		return "", err
	}

	c.SetCookie(p.cookieName, sessionID, int(p.ttl.Seconds()), "/", "", false, true)
	return "", nil
}

func (p *SessionProvider) Invalidate(c *gin.Context) error {
	sessionID, err := c.Cookie(p.cookieName)
	if err == nil && sessionID != "" {
		if err := p.store.Delete(c.Request.Context(), sessionID); err != nil {
			return err
		}
	}
	c.SetCookie(p.cookieName, "", -1, "/", "", false, true)
	return nil
}

func (p *SessionProvider) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(p.cookieName)
		if err != nil || sessionID == "" {
			p.reject(c, "missing session")
			return
		}

		userID, ok, err := p.store.Get(c.Request.Context(), sessionID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "session lookup failed")
			c.Abort()
			return
		}
		if !ok {
			p.reject(c, "invalid or expired session")
			return
		}

		user, err := p.loadUser(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load user failed")
			c.Abort()
			return
		}
		if user == nil {
			// The session points at a deleted user; treat as unauthenticated.
			p.reject(c, "invalid or expired session")
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUsernameKey, user.Username)
		c.Next()
	}
}

// reject sends HTML clients to the login page and everything else a 401.
func (p *SessionProvider) reject(c *gin.Context, message string) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}
	response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, message)
	c.Abort()
}
