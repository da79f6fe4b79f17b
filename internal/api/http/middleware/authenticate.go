package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/userhub-io/userhub-server/internal/logger"
	"github.com/userhub-io/userhub-server/internal/model"
)

const bearerPrefix = "Bearer "

// Authenticate validates bearer tokens and injects the resolved
// identity into the request context. Every failure mode produces the
// same opaque 401 response; the underlying cause is only logged.
type Authenticate struct {
	verifier       model.IdentityVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier model.IdentityVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handle returns the gin middleware that guards a route group.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.logger.Info("Auth middleware: missing or malformed authorization header",
				"path", c.Request.URL.Path)
			m.reject(c)
			return
		}

		// Token is everything after the first "Bearer " occurrence; a
		// token value containing the literal substring is truncated at
		// the next match.
		tokenString := strings.Split(authHeader, bearerPrefix)[1]

		identity, err := m.verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			m.logger.Error("Auth middleware: token verification failed",
				"path", c.Request.URL.Path,
				"error", err.Error())
			m.reject(c)
			return
		}

		ctx := m.contextManager.SetIdentityToContext(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (m *Authenticate) reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
