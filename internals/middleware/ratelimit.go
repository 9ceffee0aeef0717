package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/bu6wer8/student-services-V2/internals/utils"
)

// RequestLimiter throttles raw request volume per IP on the auth endpoints.
// It is a coarse outer shield; the escalating per-IP lockout inside the auth
// service is the real defense against credential stuffing.
type RequestLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry

	every time.Duration
	burst int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRequestLimiter(every time.Duration, burst int) *RequestLimiter {
	rl := &RequestLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    every,
		burst:    burst,
	}
	go rl.cleanup()
	return rl
}

// Handle rejects requests exceeding the per-IP budget with 429.
func (rl *RequestLimiter) Handle(c *gin.Context) {
	ip := utils.ClientIP(c.Request)

	rl.mu.Lock()
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(rl.every), rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	allowed := entry.limiter.Allow()
	rl.mu.Unlock()

	if !allowed {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Too many requests"})
		return
	}
	c.Next()
}

func (rl *RequestLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for ip, entry := range rl.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(rl.limiters, ip)
			}
		}
		rl.mu.Unlock()
	}
}
