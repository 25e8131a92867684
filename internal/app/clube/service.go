package clube

import (
	"context"
	"strings"

	"github.com/diillson/bookbridge/internal/app/estatistica"
	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"go.uber.org/zap"
)

type CreateInput struct {
	Nome      string
	Descricao *string
}

// UpdateInput contém os campos opcionais da atualização; nil mantém o valor atual
type UpdateInput struct {
	Nome      *string
	Descricao *string
}

type Service struct {
	repo        repository.ClubeRepository
	invalidator estatistica.Invalidator
	logger      *zap.Logger
}

func NewService(repo repository.ClubeRepository, invalidator estatistica.Invalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Create registra um clube cujo criador é o usuário autenticado
func (s *Service) Create(ctx context.Context, criadorID uint, in CreateInput) (*model.Clube, error) {
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return nil, domain.ErrDadosIncompletos
	}

	clube := &model.Clube{
		Nome:             nome,
		Descricao:        in.Descricao,
		IDUsuarioCriador: criadorID,
	}
	if err := s.repo.Create(ctx, clube); err != nil {
		return nil, err
	}

	s.logger.Info("Clube criado", zap.Uint("id", clube.ID), zap.Uint("criador", criadorID))
	s.invalidate(ctx)
	return clube, nil
}

func (s *Service) List(ctx context.Context) ([]model.Clube, error) {
	return s.repo.List(ctx)
}

// GetOwned retorna o clube se o usuário for o criador. Clube inexistente e
// clube de outro usuário resultam ambos em repository.ErrClubeNotFound.
func (s *Service) GetOwned(ctx context.Context, id, usuarioID uint) (*model.Clube, error) {
	clube, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if clube.IDUsuarioCriador != usuarioID {
		s.logger.Debug("Acesso a clube de outro usuário",
			zap.Uint("clube", id),
			zap.Uint("usuario", usuarioID))
		return nil, repository.ErrClubeNotFound
	}
	return clube, nil
}

// Update altera nome e descrição de um clube do usuário
func (s *Service) Update(ctx context.Context, id, usuarioID uint, in UpdateInput) (*model.Clube, error) {
	clube, err := s.GetOwned(ctx, id, usuarioID)
	if err != nil {
		return nil, err
	}

	if in.Nome != nil {
		nome := strings.TrimSpace(*in.Nome)
		if nome == "" {
			return nil, domain.ErrDadosIncompletos
		}
		clube.Nome = nome
	}
	if in.Descricao != nil {
		clube.Descricao = in.Descricao
	}

	if err := s.repo.Update(ctx, clube); err != nil {
		return nil, err
	}
	return clube, nil
}

// Delete remove um clube do usuário com seus livros e avaliações
func (s *Service) Delete(ctx context.Context, id, usuarioID uint) error {
	if _, err := s.GetOwned(ctx, id, usuarioID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Clube removido", zap.Uint("id", id))
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
}
