package livro

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/bookbridge/internal/app/estatistica"
	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"go.uber.org/zap"
)

type CreateInput struct {
	Titulo string
	Autor  string
}

type UpdateInput struct {
	Titulo *string
	Autor  *string
}

// ClubeOwnership resolve o clube de um usuário, conflando inexistência e posse alheia
type ClubeOwnership interface {
	GetOwned(ctx context.Context, id, usuarioID uint) (*model.Clube, error)
}

type Service struct {
	repo        repository.LivroRepository
	clubes      ClubeOwnership
	invalidator estatistica.Invalidator
	logger      *zap.Logger
}

func NewService(repo repository.LivroRepository, clubes ClubeOwnership, invalidator estatistica.Invalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		clubes:      clubes,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Create adiciona um livro a um clube do usuário. A posse é verificada antes dos campos.
func (s *Service) Create(ctx context.Context, clubeID, usuarioID uint, in CreateInput) (*model.Livro, error) {
	if _, err := s.clubes.GetOwned(ctx, clubeID, usuarioID); err != nil {
		return nil, err
	}

	titulo := strings.TrimSpace(in.Titulo)
	autor := strings.TrimSpace(in.Autor)
	if titulo == "" || autor == "" {
		return nil, domain.ErrDadosIncompletos
	}

	livro := &model.Livro{Titulo: titulo, Autor: autor, IDClube: clubeID}
	if err := s.repo.Create(ctx, livro); err != nil {
		return nil, err
	}

	s.logger.Info("Livro adicionado", zap.Uint("id", livro.ID), zap.Uint("clube", clubeID))
	s.invalidate(ctx)
	return livro, nil
}

// ListByClube lista os livros de um clube do usuário
func (s *Service) ListByClube(ctx context.Context, clubeID, usuarioID uint) ([]model.Livro, error) {
	if _, err := s.clubes.GetOwned(ctx, clubeID, usuarioID); err != nil {
		return nil, err
	}
	return s.repo.ListByClube(ctx, clubeID)
}

func (s *Service) Update(ctx context.Context, id, usuarioID uint, in UpdateInput) (*model.Livro, error) {
	livro, err := s.owned(ctx, id, usuarioID)
	if err != nil {
		return nil, err
	}

	if in.Titulo != nil {
		titulo := strings.TrimSpace(*in.Titulo)
		if titulo == "" {
			return nil, domain.ErrDadosIncompletos
		}
		livro.Titulo = titulo
	}
	if in.Autor != nil {
		autor := strings.TrimSpace(*in.Autor)
		if autor == "" {
			return nil, domain.ErrDadosIncompletos
		}
		livro.Autor = autor
	}

	if err := s.repo.Update(ctx, livro); err != nil {
		return nil, err
	}
	return livro, nil
}

// Delete remove o livro e suas avaliações
func (s *Service) Delete(ctx context.Context, id, usuarioID uint) error {
	if _, err := s.owned(ctx, id, usuarioID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Livro removido", zap.Uint("id", id))
	s.invalidate(ctx)
	return nil
}

// owned carrega o livro e exige que o usuário seja o criador do clube.
// Livro inexistente é ErrLivroNotFound; livro de clube alheio é ErrAcessoNegado.
func (s *Service) owned(ctx context.Context, id, usuarioID uint) (*model.Livro, error) {
	livro, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.clubes.GetOwned(ctx, livro.IDClube, usuarioID); err != nil {
		if errors.Is(err, repository.ErrClubeNotFound) {
			return nil, domain.ErrAcessoNegado
		}
		return nil, err
	}
	return livro, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
}
