package identity

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skinvault/internal/model"
	"skinvault/internal/pkg/jwtutil"
	"skinvault/internal/transport/http/response"
)

// TokenProvider authenticates requests by a signed bearer token carrying the
// username as its subject. Validation checks signature and expiry only; it
// does not re-check that the user row still exists.
type TokenProvider struct {
	secret     string
	expiration time.Duration
}

func NewTokenProvider(secret string, expiration time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:     secret,
		expiration: expiration,
	}
}

func (p *TokenProvider) Issue(_ *gin.Context, user *model.User) (string, error) {
	return jwtutil.GenerateToken(p.secret, p.expiration, user.ID, user.Username)
}

// Invalidate is a no-op: bearer tokens are stateless and stay valid until
// they expire.
func (p *TokenProvider) Invalidate(_ *gin.Context) error {
	return nil
}

func (p *TokenProvider) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(p.secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}
