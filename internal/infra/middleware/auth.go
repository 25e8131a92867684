package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	apierrors "github.com/diillson/bookbridge/pkg/errors"
	"github.com/diillson/bookbridge/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityKey é a chave do usuário autenticado no contexto do gin
const IdentityKey = "usuario"

// Authenticator resolve um token bearer para o usuário dono dele
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Usuario, error)
}

// AuthMiddleware gerencia middlewares de autenticação
type AuthMiddleware struct {
	auth   Authenticator
	logger *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(auth Authenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		logger: logger,
	}
}

// RequireIdentity exige um token bearer válido de um usuário existente e
// guarda o usuário no contexto
func (m *AuthMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apierrors.Unauthorized("Token de autenticação ausente", nil).WithReason("token_ausente"))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, apierrors.Unauthorized("Formato inválido do token", nil).WithReason("token_malformado"))
			return
		}

		usuario, err := m.auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			abortWithError(c, m.tokenError(err))
			return
		}

		c.Set(IdentityKey, usuario)
		c.Next()
	}
}

func (m *AuthMiddleware) tokenError(err error) *apierrors.APIError {
	switch {
	case errors.Is(err, security.ErrTokenExpired):
		return apierrors.Unauthorized("Token expirado", err).WithReason("token_expirado")
	case errors.Is(err, security.ErrTokenInvalid):
		return apierrors.Unauthorized("Token inválido", err).WithReason("token_invalido")
	case errors.Is(err, domain.ErrUsuarioInvalido):
		return apierrors.Unauthorized("Usuário do token não existe", err).WithReason("usuario_invalido")
	default:
		m.logger.Error("falha ao validar identidade", zap.Error(err))
		return apierrors.InternalServer("", err)
	}
}

// UsuarioFromContext retorna o usuário guardado por RequireIdentity
func UsuarioFromContext(c *gin.Context) (*model.Usuario, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	usuario, ok := value.(*model.Usuario)
	return usuario, ok && usuario != nil
}

func abortWithError(c *gin.Context, err *apierrors.APIError) {
	c.AbortWithStatusJSON(err.Code, err)
}
