package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bu6wer8/student-services-V2/internals/auth"
	"github.com/bu6wer8/student-services-V2/internals/utils"
)

// SessionCookieName is the cookie carrying the opaque admin session id.
const SessionCookieName = "admin_session"

// PrincipalKey is the gin context key holding the authenticated admin username.
const PrincipalKey = "admin_user"

type RequireAuthMiddleware struct {
	Auth *auth.Service
}

func NewRequireAuthMiddleware(svc *auth.Service) *RequireAuthMiddleware {
	return &RequireAuthMiddleware{Auth: svc}
}

// RequireAdmin guards the admin pages: it resolves the session cookie,
// verifies it against the registry and stores the principal in the context.
// Anything else is a 401.
func (m *RequireAuthMiddleware) RequireAdmin(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	ip := utils.ClientIP(c.Request)
	view, ok := m.Auth.VerifySession(sessionID, ip)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid session"})
		return
	}

	c.Set(PrincipalKey, view.Principal)
	c.Next()
}

// RequireAdminAPI guards the REST endpoints. It accepts either the session
// cookie or a bearer access token minted by the token endpoint.
func (m *RequireAuthMiddleware) RequireAdminAPI(c *gin.Context) {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		subject, err := m.Auth.Tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			return
		}
		c.Set(PrincipalKey, subject)
		c.Next()
		return
	}

	m.RequireAdmin(c)
}
