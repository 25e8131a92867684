package usuario

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/bookbridge/internal/app/estatistica"
	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/diillson/bookbridge/pkg/security"
	"go.uber.org/zap"
)

// CreateInput contém os campos obrigatórios do cadastro
type CreateInput struct {
	Nome  string
	Email string
	Senha string
}

// UpdateInput contém os campos opcionais da atualização; nil mantém o valor atual
type UpdateInput struct {
	Nome  *string
	Email *string
	Senha *string
}

type Service struct {
	repo        repository.UsuarioRepository
	invalidator estatistica.Invalidator
	logger      *zap.Logger
}

func NewService(repo repository.UsuarioRepository, invalidator estatistica.Invalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Create cadastra um usuário guardando apenas o hash da senha
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Usuario, error) {
	nome := strings.TrimSpace(in.Nome)
	email := strings.TrimSpace(in.Email)
	if nome == "" || email == "" || in.Senha == "" {
		return nil, domain.ErrDadosIncompletos
	}

	if err := s.ensureEmailLivre(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(in.Senha)
	if err != nil {
		return nil, err
	}

	usuario := &model.Usuario{Nome: nome, Email: email, SenhaHash: hash}
	if err := s.repo.Create(ctx, usuario); err != nil {
		if errors.Is(err, repository.ErrDuplicatedEmail) {
			return nil, domain.ErrEmailEmUso
		}
		return nil, err
	}

	s.logger.Info("Usuário criado", zap.Uint("id", usuario.ID))
	s.invalidate(ctx)
	return usuario, nil
}

func (s *Service) List(ctx context.Context) ([]model.Usuario, error) {
	return s.repo.List(ctx)
}

// Update aplica os campos presentes. Senha vazia é ignorada.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*model.Usuario, error) {
	usuario, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Nome != nil {
		nome := strings.TrimSpace(*in.Nome)
		if nome == "" {
			return nil, domain.ErrDadosIncompletos
		}
		usuario.Nome = nome
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, domain.ErrDadosIncompletos
		}
		if email != usuario.Email {
			if err := s.ensureEmailLivre(ctx, email, usuario.ID); err != nil {
				return nil, err
			}
		}
		usuario.Email = email
	}

	if in.Senha != nil && *in.Senha != "" {
		hash, err := security.HashPassword(*in.Senha)
		if err != nil {
			return nil, err
		}
		usuario.SenhaHash = hash
	}

	if err := s.repo.Update(ctx, usuario); err != nil {
		if errors.Is(err, repository.ErrDuplicatedEmail) {
			return nil, domain.ErrEmailEmUso
		}
		return nil, err
	}
	return usuario, nil
}

// Delete remove o usuário e tudo o que ele criou
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Usuário removido", zap.Uint("id", id))
	s.invalidate(ctx)
	return nil
}

// ensureEmailLivre falha quando o email pertence a outro usuário
func (s *Service) ensureEmailLivre(ctx context.Context, email string, proprioID uint) error {
	existente, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrUsuarioNotFound):
		return nil
	case err != nil:
		return err
	case existente.ID != proprioID:
		return domain.ErrEmailEmUso
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
}
