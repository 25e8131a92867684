package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/diillson/bookbridge/pkg/security"
	"go.uber.org/zap"
)

// AuthService gerencia login e resolução de tokens
type AuthService struct {
	keyManager *security.KeyManager
	usuarios   repository.UsuarioRepository
	logger     *zap.Logger
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(keyManager *security.KeyManager, usuarios repository.UsuarioRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		keyManager: keyManager,
		usuarios:   usuarios,
		logger:     logger,
	}
}

// Login valida email e senha e emite um token. Email desconhecido e senha
// errada produzem o mesmo erro.
func (s *AuthService) Login(ctx context.Context, email, senha string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || senha == "" {
		return "", domain.ErrDadosIncompletos
	}

	usuario, err := s.usuarios.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			s.logger.Warn("Falha na autenticação: email desconhecido")
			return "", domain.ErrCredenciaisInvalidas
		}
		return "", err
	}

	if !security.CheckPassword(usuario.SenhaHash, senha) {
		s.logger.Warn("Falha na autenticação: senha incorreta", zap.Uint("user_id", usuario.ID))
		return "", domain.ErrCredenciaisInvalidas
	}

	token, err := s.keyManager.GenerateToken(usuario.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info("Login bem-sucedido", zap.Uint("user_id", usuario.ID))
	return token, nil
}

// Authenticate valida o token e carrega o usuário correspondente. Erros de
// token vêm de pkg/security; usuário removido resulta em domain.ErrUsuarioInvalido.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*model.Usuario, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	usuario, err := s.usuarios.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			s.logger.Warn("Usuário do token não encontrado", zap.Uint("user_id", claims.UserID))
			return nil, domain.ErrUsuarioInvalido
		}
		return nil, err
	}

	return usuario, nil
}
