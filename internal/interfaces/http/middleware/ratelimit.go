package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client key
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	perWin    int
	idleTTL   time.Duration
	nextSweep time.Time
	now       func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requests per window with the given burst.
// Keys idle for two windows are dropped by a sweep that runs at most once
// every two windows.
func NewRateLimiter(requests int, window time.Duration, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if window > 0 && requests > 0 {
		limit = rate.Limit(float64(requests) / window.Seconds())
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   limit,
		burst:   burst,
		perWin:  requests,
		idleTTL: 2 * window,
		now:     time.Now,
	}
}

// Allow reports whether key may make a request now and the tokens left
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if !now.Before(rl.nextSweep) {
		rl.sweep(now)
	}

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now

	allowed := cl.limiter.AllowN(now, 1)
	remaining := int(cl.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining
}

func (rl *RateLimiter) sweep(now time.Time) {
	for k, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > rl.idleTTL {
			delete(rl.clients, k)
		}
	}
	rl.nextSweep = now.Add(rl.idleTTL)
}

// RateLimit rejects clients over their budget with 429
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.Allow(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.perWin))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrCodeRateLimited, "Too many requests", "rate limit exceeded").
					WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}
