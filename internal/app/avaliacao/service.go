package avaliacao

import (
	"context"

	"github.com/diillson/bookbridge/internal/app/estatistica"
	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"go.uber.org/zap"
)

type CreateInput struct {
	Comentario *string
	Nota       *int
}

type UpdateInput struct {
	Comentario *string
	Nota       *int
}

type Service struct {
	repo        repository.AvaliacaoRepository
	livros      repository.LivroRepository
	invalidator estatistica.Invalidator
	logger      *zap.Logger
}

func NewService(repo repository.AvaliacaoRepository, livros repository.LivroRepository, invalidator estatistica.Invalidator, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		livros:      livros,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Create registra a avaliação do usuário para um livro. A nota é validada antes
// da existência do livro.
func (s *Service) Create(ctx context.Context, livroID, usuarioID uint, in CreateInput) (*model.Avaliacao, error) {
	if in.Nota == nil {
		return nil, domain.ErrDadosIncompletos
	}
	if !model.NotaValida(*in.Nota) {
		return nil, domain.ErrNotaInvalida
	}

	if _, err := s.livros.GetByID(ctx, livroID); err != nil {
		return nil, err
	}

	avaliacao := &model.Avaliacao{
		Comentario: in.Comentario,
		Nota:       *in.Nota,
		IDLivro:    livroID,
		IDUsuario:  usuarioID,
	}
	if err := s.repo.Create(ctx, avaliacao); err != nil {
		return nil, err
	}

	s.logger.Info("Avaliação criada",
		zap.Uint("id", avaliacao.ID),
		zap.Uint("livro", livroID),
		zap.Int("nota", avaliacao.Nota))
	s.invalidate(ctx)
	return avaliacao, nil
}

// ListByLivro lista as avaliações de um livro existente
func (s *Service) ListByLivro(ctx context.Context, livroID uint) ([]model.Avaliacao, error) {
	if _, err := s.livros.GetByID(ctx, livroID); err != nil {
		return nil, err
	}
	return s.repo.ListByLivro(ctx, livroID)
}

func (s *Service) Update(ctx context.Context, id, usuarioID uint, in UpdateInput) (*model.Avaliacao, error) {
	avaliacao, err := s.owned(ctx, id, usuarioID)
	if err != nil {
		return nil, err
	}

	if in.Nota != nil {
		if !model.NotaValida(*in.Nota) {
			return nil, domain.ErrNotaInvalida
		}
		avaliacao.Nota = *in.Nota
	}
	if in.Comentario != nil {
		avaliacao.Comentario = in.Comentario
	}

	if err := s.repo.Update(ctx, avaliacao); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return avaliacao, nil
}

func (s *Service) Delete(ctx context.Context, id, usuarioID uint) error {
	if _, err := s.owned(ctx, id, usuarioID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// owned exige que o usuário seja o autor; caso contrário a avaliação é tratada como inexistente
func (s *Service) owned(ctx context.Context, id, usuarioID uint) (*model.Avaliacao, error) {
	avaliacao, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if avaliacao.IDUsuario != usuarioID {
		return nil, repository.ErrAvaliacaoNotFound
	}
	return avaliacao, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
}
