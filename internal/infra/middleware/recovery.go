package middleware

import (
	"errors"
	"net"
	"os"
	"runtime/debug"
	"syscall"

	apierrors "github.com/diillson/bookbridge/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecoveryMiddleware struct {
	logger *zap.Logger
}

func NewRecoveryMiddleware(logger *zap.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{logger: logger}
}

// Recovery converte pânicos em 500 com corpo genérico. A pilha só vai para o log.
// Conexões encerradas pelo cliente não recebem resposta.
func (m *RecoveryMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log := m.logger.With(
				zap.String("request_id", c.GetString("request_id")),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)

			if err, ok := rec.(error); ok && brokenPipe(err) {
				log.Warn("conexão encerrada pelo cliente", zap.Error(err))
				c.Abort()
				return
			}

			log.Error("recuperado de pânico", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
			abortWithError(c, apierrors.InternalServer("", nil))
		}()

		c.Next()
	}
}

func brokenPipe(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if errors.As(opErr, &sysErr) {
		return errors.Is(sysErr.Err, syscall.EPIPE) || errors.Is(sysErr.Err, syscall.ECONNRESET)
	}
	return false
}
