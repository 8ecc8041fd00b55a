package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sparklewash/config"
	"sparklewash/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter *rate.Limiter
	// lastSeen is unix nanoseconds, atomic: it is touched on every
	// request while only the read lock is held.
	lastSeen atomic.Int64
}

func (cl *clientLimiter) touch() {
	cl.lastSeen.Store(time.Now().UnixNano())
}

// ipLimiters tracks one token bucket per client IP. Entries idle for an
// hour are evicted so the map does not grow without bound.
type ipLimiters struct {
	mu      sync.RWMutex
	clients map[string]*clientLimiter
}

var limiters = &ipLimiters{clients: make(map[string]*clientLimiter)}

func init() {
	go limiters.evictLoop()
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.RLock()
	cl, ok := l.clients[ip]
	l.mu.RUnlock()
	if ok {
		cl.touch()
		return cl.limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cl, ok := l.clients[ip]; ok {
		cl.touch()
		return cl.limiter
	}
	cl = &clientLimiter{limiter: rate.NewLimiter(perIPRate())}
	cl.touch()
	l.clients[ip] = cl
	return cl.limiter
}

// perIPRate reads the configured per-IP budget, defaulting to 200
// requests per minute.
func perIPRate() (rate.Limit, int) {
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 200
	}
	return rate.Every(time.Minute / time.Duration(perMin)), perMin
}

func (l *ipLimiters) evictLoop() {
	for range time.Tick(10 * time.Minute) {
		cutoff := time.Now().Add(-time.Hour).UnixNano()
		l.mu.Lock()
		for ip, cl := range l.clients {
			if cl.lastSeen.Load() < cutoff {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP resolves the originating address, preferring proxy headers
// over the raw remote address.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}

// RateLimitMiddleware limits requests per IP address.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !limiters.get(ip).Allow() {
			utils.GetLogger().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
