package middleware

import (
	"net/http"
	"time"

	"github.com/diillson/bookbridge/internal/infra/metrics"
	"github.com/diillson/bookbridge/pkg/config"
	"github.com/diillson/bookbridge/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carrega o identificador da requisição
const RequestIDHeader = "X-Request-ID"

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger             *zap.Logger
	requestLogger      *logging.ContextLogger
	authMiddleware     *AuthMiddleware
	recoveryMiddleware *RecoveryMiddleware
	securityMiddleware *SecurityMiddleware
	tracingMiddleware  *TracingMiddleware
	metricsMiddleware  *MetricsMiddleware
	loginLimiter       *RateLimiter
}

// NewMiddleware cria o conjunto de middlewares a partir da configuração
func NewMiddleware(logger *zap.Logger, auth Authenticator, apiMetrics *metrics.APIMetrics, cfg *config.Config) *Middleware {
	m := &Middleware{
		logger:             logger,
		requestLogger:      logging.NewContextLogger(logger),
		authMiddleware:     NewAuthMiddleware(auth, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		securityMiddleware: NewSecurityMiddleware(logger),
		tracingMiddleware:  NewTracingMiddleware(logger, cfg.Tracing.ServiceName),
		loginLimiter:       NewRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginBurst, apiMetrics, logger),
	}
	if apiMetrics != nil {
		m.metricsMiddleware = NewMetricsMiddleware(apiMetrics, logger)
	}
	return m
}

// Metrics retorna o middleware de métricas, no-op quando desabilitado
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return func(c *gin.Context) {
		c.Next()
	}
}

// MetricsHandler retorna o handler do endpoint de métricas, ou nil se desabilitado
func (m *Middleware) MetricsHandler() gin.HandlerFunc {
	if m.metricsMiddleware == nil {
		return nil
	}
	return m.metricsMiddleware.Handler()
}

// RequireIdentity exige um usuário autenticado
func (m *Middleware) RequireIdentity() gin.HandlerFunc {
	return m.authMiddleware.RequireIdentity()
}

// LoginRateLimit limita tentativas de login por IP
func (m *Middleware) LoginRateLimit() gin.HandlerFunc {
	return m.loginLimiter.Middleware()
}

// LoginLimiter expõe o limitador de login
func (m *Middleware) LoginLimiter() *RateLimiter {
	return m.loginLimiter
}

func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// IgnoreFavicon responde 204 para /favicon.ico
func (m *Middleware) IgnoreFavicon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/favicon.ico" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Logger registra cada requisição concluída e garante um X-Request-ID
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if usuario, ok := UsuarioFromContext(c); ok {
			fields = append(fields, zap.Uint("user_id", usuario.ID))
		}

		ctx := c.Request.Context()
		if c.Writer.Status() >= http.StatusInternalServerError {
			m.requestLogger.WarnCtx(ctx, "request completed", fields...)
			return
		}
		m.requestLogger.InfoCtx(ctx, "request completed", fields...)
	}
}

func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}
