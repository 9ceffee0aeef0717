package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/bu6wer8/student-services-V2/internals/auth"
)

// SecurityHeaders sets the baseline response headers for every route.
func SecurityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Next()
}

// SweepSessions triggers the session sweep on incoming traffic. The sweep is
// a cheap no-op when nothing has expired, so running it per request is fine.
func SweepSessions(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Sessions.SweepExpired()
		c.Next()
	}
}
