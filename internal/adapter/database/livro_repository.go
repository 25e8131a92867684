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

// LivroRepository implementa repository.LivroRepository
type LivroRepository struct {
	baseRepository
}

func NewLivroRepository(db *gorm.DB, logger *zap.Logger) repository.LivroRepository {
	return &LivroRepository{newBaseRepository(db, logger, "livros")}
}

func (r *LivroRepository) Create(ctx context.Context, livro *model.Livro) error {
	ctx, span := r.startSpan(ctx, "LivroRepository.Create", "insert",
		attribute.Int64("livro.clube", int64(livro.IDClube)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(livro).Error
	})
	if err != nil {
		return r.fail(span, "falha ao criar livro", fmt.Errorf("falha ao criar livro: %w", err))
	}
	return nil
}

// ListByClube retorna os livros de um clube ordenados por id
func (r *LivroRepository) ListByClube(ctx context.Context, clubeID uint) ([]model.Livro, error) {
	ctx, span := r.startSpan(ctx, "LivroRepository.ListByClube", "select",
		attribute.Int64("livro.clube", int64(clubeID)))
	defer span.End()

	var livros []model.Livro
	if err := r.db.WithContext(ctx).Where("id_clube = ?", clubeID).Order("id").Find(&livros).Error; err != nil {
		return nil, r.fail(span, "falha ao listar livros", fmt.Errorf("falha ao listar livros: %w", err),
			zap.Uint("clube", clubeID))
	}

	span.SetAttributes(attribute.Int("livros.count", len(livros)))
	return livros, nil
}

func (r *LivroRepository) GetByID(ctx context.Context, id uint) (*model.Livro, error) {
	ctx, span := r.startSpan(ctx, "LivroRepository.GetByID", "select",
		attribute.Int64("livro.id", int64(id)))
	defer span.End()

	var livro model.Livro
	if err := r.db.WithContext(ctx).First(&livro, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(span, repository.ErrLivroNotFound)
		}
		return nil, r.fail(span, "falha ao buscar livro", fmt.Errorf("falha ao buscar livro: %w", err),
			zap.Uint("id", id))
	}
	return &livro, nil
}

func (r *LivroRepository) Update(ctx context.Context, livro *model.Livro) error {
	ctx, span := r.startSpan(ctx, "LivroRepository.Update", "update",
		attribute.Int64("livro.id", int64(livro.ID)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var atual model.Livro
		if err := tx.Select("id").First(&atual, livro.ID).Error; err != nil {
			return err
		}
		return tx.Model(&atual).Updates(map[string]interface{}{
			"titulo": livro.Titulo,
			"autor":  livro.Autor,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(span, repository.ErrLivroNotFound)
		}
		return r.fail(span, "falha ao atualizar livro", fmt.Errorf("falha ao atualizar livro: %w", err),
			zap.Uint("id", livro.ID))
	}
	return nil
}

// Delete remove o livro e suas avaliações
func (r *LivroRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.startSpan(ctx, "LivroRepository.Delete", "delete",
		attribute.Int64("livro.id", int64(id)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var livro model.Livro
		if err := tx.Select("id").First(&livro, id).Error; err != nil {
			return err
		}
		if err := tx.Where("id_livro = ?", id).Delete(&model.Avaliacao{}).Error; err != nil {
			return err
		}
		return tx.Delete(&livro).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(span, repository.ErrLivroNotFound)
		}
		return r.fail(span, "falha ao remover livro", fmt.Errorf("falha ao remover livro: %w", err),
			zap.Uint("id", id))
	}
	return nil
}
