package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORSMiddleware handles CORS for the web client
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		// Support wildcard matching, e.g. https://*.example.com
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// Idle limiter entries are pruned so the per-IP map cannot grow without
// bound over the life of the process.
const (
	limiterIdleTTL       = 10 * time.Minute
	limiterPruneInterval = time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiters struct {
	mu        sync.Mutex
	perMinute int
	entries   map[string]*ipLimiter
	lastPrune time.Time
}

func newRateLimiters(perMinute int) *rateLimiters {
	return &rateLimiters{
		perMinute: perMinute,
		entries:   make(map[string]*ipLimiter),
		lastPrune: time.Now(),
	}
}

// get returns the limiter for ip, creating it on first sight and pruning
// idle entries opportunistically.
func (l *rateLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastPrune) >= limiterPruneInterval {
		l.prune(now)
	}

	entry, ok := l.entries[ip]
	if !ok {
		entry = &ipLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute),
		}
		l.entries[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// prune drops entries idle past the TTL; callers hold the mutex.
func (l *rateLimiters) prune(now time.Time) {
	for ip, entry := range l.entries {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.entries, ip)
		}
	}
	l.lastPrune = now
}

func (l *rateLimiters) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RateLimitMiddleware applies a per-IP token bucket. perMinute tokens refill
// each minute with a burst of the same size.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	limiters := newRateLimiters(perMinute)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// LoggerMiddleware logs requests (simple version for now)
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}
