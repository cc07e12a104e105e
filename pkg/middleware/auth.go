package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterpad/rosterpad/internal/sessions"
	"github.com/rosterpad/rosterpad/pkg/logger"
)

// Verifier is the minimal interface the session gate depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (map[string]interface{}, error)
}

// RequireSession returns a Gin middleware that enforces presence of a bearer
// session credential on protected routes. Verifying the credential is the
// token layer's job: with a nil verifier only presence is enforced, which
// matches deployments where tokens are minted and checked elsewhere.
// Blacklisted (logged-out) tokens are rejected either way.
func RequireSession(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session credential"})
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		// fail closed: an unreachable revocation list must not admit a
		// possibly logged-out token
		black, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), token)
		if err != nil {
			logger.Errorf("token revocation check failed: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session check unavailable"})
			return
		}
		if black {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
			return
		}

		if ver != nil {
			claims, err := ver.Verify(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
				return
			}
			c.Set("claims", claims)
		}
		c.Next()
	}
}
