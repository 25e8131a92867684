package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/diillson/bookbridge/internal/infra/metrics"
	apierrors "github.com/diillson/bookbridge/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter aplica um token bucket por IP de cliente
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	metrics  *metrics.APIMetrics
	logger   *zap.Logger
}

// NewRateLimiter cria um limitador com requestsPerSecond e burst por IP
func NewRateLimiter(requestsPerSecond float64, burst int, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		metrics:  apiMetrics,
		logger:   logger,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Middleware rejeita com 429 as requisições acima do limite
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(math.Ceil(1 / float64(rl.rate))))

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !rl.getLimiter(clientIP).Allow() {
			rl.logger.Warn("limite de requisições excedido",
				zap.String("ip", clientIP),
				zap.String("path", c.Request.URL.Path))
			if rl.metrics != nil {
				rl.metrics.LoginRateLimited(c.FullPath())
			}

			c.Header("Retry-After", retryAfter)
			abortWithError(c, apierrors.TooManyRequests("Muitas tentativas de login, tente novamente mais tarde", nil))
			return
		}

		c.Next()
	}
}

// Cleanup remove os limitadores sem uso há mais de maxIdle
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxIdle)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

// StartCleanup executa Cleanup periodicamente até o contexto ser cancelado
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := rl.Cleanup(interval); n > 0 {
					rl.logger.Debug("limitadores ociosos removidos", zap.Int("count", n))
				}
			}
		}
	}()
}
