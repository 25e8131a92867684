package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AvaliacaoRepository implementa repository.AvaliacaoRepository
type AvaliacaoRepository struct {
	baseRepository
}

func NewAvaliacaoRepository(db *gorm.DB, logger *zap.Logger) repository.AvaliacaoRepository {
	return &AvaliacaoRepository{newBaseRepository(db, logger, "avaliacoes")}
}

func (r *AvaliacaoRepository) Create(ctx context.Context, avaliacao *model.Avaliacao) error {
	ctx, span := r.startSpan(ctx, "AvaliacaoRepository.Create", "insert",
		attribute.Int64("avaliacao.livro", int64(avaliacao.IDLivro)),
		attribute.Int("avaliacao.nota", avaliacao.Nota))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(avaliacao).Error
	})
	if err != nil {
		return r.fail(span, "falha ao criar avaliação", fmt.Errorf("falha ao criar avaliação: %w", err))
	}
	return nil
}

// ListByLivro retorna as avaliações de um livro ordenadas por id
func (r *AvaliacaoRepository) ListByLivro(ctx context.Context, livroID uint) ([]model.Avaliacao, error) {
	ctx, span := r.startSpan(ctx, "AvaliacaoRepository.ListByLivro", "select",
		attribute.Int64("avaliacao.livro", int64(livroID)))
	defer span.End()

	var avaliacoes []model.Avaliacao
	if err := r.db.WithContext(ctx).Where("id_livro = ?", livroID).Order("id").Find(&avaliacoes).Error; err != nil {
		return nil, r.fail(span, "falha ao listar avaliações", fmt.Errorf("falha ao listar avaliações: %w", err),
			zap.Uint("livro", livroID))
	}

	span.SetAttributes(attribute.Int("avaliacoes.count", len(avaliacoes)))
	return avaliacoes, nil
}

func (r *AvaliacaoRepository) GetByID(ctx context.Context, id uint) (*model.Avaliacao, error) {
	ctx, span := r.startSpan(ctx, "AvaliacaoRepository.GetByID", "select",
		attribute.Int64("avaliacao.id", int64(id)))
	defer span.End()

	var avaliacao model.Avaliacao
	if err := r.db.WithContext(ctx).First(&avaliacao, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(span, repository.ErrAvaliacaoNotFound)
		}
		return nil, r.fail(span, "falha ao buscar avaliação", fmt.Errorf("falha ao buscar avaliação: %w", err),
			zap.Uint("id", id))
	}
	return &avaliacao, nil
}

func (r *AvaliacaoRepository) Update(ctx context.Context, avaliacao *model.Avaliacao) error {
	ctx, span := r.startSpan(ctx, "AvaliacaoRepository.Update", "update",
		attribute.Int64("avaliacao.id", int64(avaliacao.ID)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var atual model.Avaliacao
		if err := tx.Select("id").First(&atual, avaliacao.ID).Error; err != nil {
			return err
		}
		return tx.Model(&atual).Updates(map[string]interface{}{
			"comentario": avaliacao.Comentario,
			"nota":       avaliacao.Nota,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(span, repository.ErrAvaliacaoNotFound)
		}
		return r.fail(span, "falha ao atualizar avaliação", fmt.Errorf("falha ao atualizar avaliação: %w", err),
			zap.Uint("id", avaliacao.ID))
	}
	return nil
}

func (r *AvaliacaoRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.startSpan(ctx, "AvaliacaoRepository.Delete", "delete",
		attribute.Int64("avaliacao.id", int64(id)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Avaliacao{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(span, repository.ErrAvaliacaoNotFound)
		}
		return r.fail(span, "falha ao remover avaliação", fmt.Errorf("falha ao remover avaliação: %w", err),
			zap.Uint("id", id))
	}
	return nil
}
