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

// ClubeRepository implementa repository.ClubeRepository
type ClubeRepository struct {
	baseRepository
}

func NewClubeRepository(db *gorm.DB, logger *zap.Logger) repository.ClubeRepository {
	return &ClubeRepository{newBaseRepository(db, logger, "clubes")}
}

func (r *ClubeRepository) Create(ctx context.Context, clube *model.Clube) error {
	ctx, span := r.startSpan(ctx, "ClubeRepository.Create", "insert",
		attribute.Int64("clube.criador", int64(clube.IDUsuarioCriador)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(clube).Error
	})
	if err != nil {
		return r.fail(span, "falha ao criar clube", fmt.Errorf("falha ao criar clube: %w", err))
	}
	return nil
}

func (r *ClubeRepository) List(ctx context.Context) ([]model.Clube, error) {
	ctx, span := r.startSpan(ctx, "ClubeRepository.List", "select")
	defer span.End()

	var clubes []model.Clube
	if err := r.db.WithContext(ctx).Order("id").Find(&clubes).Error; err != nil {
		return nil, r.fail(span, "falha ao listar clubes", fmt.Errorf("falha ao listar clubes: %w", err))
	}

	span.SetAttributes(attribute.Int("clubes.count", len(clubes)))
	return clubes, nil
}

func (r *ClubeRepository) GetByID(ctx context.Context, id uint) (*model.Clube, error) {
	ctx, span := r.startSpan(ctx, "ClubeRepository.GetByID", "select",
		attribute.Int64("clube.id", int64(id)))
	defer span.End()

	var clube model.Clube
	if err := r.db.WithContext(ctx).First(&clube, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(span, repository.ErrClubeNotFound)
		}
		return nil, r.fail(span, "falha ao buscar clube", fmt.Errorf("falha ao buscar clube: %w", err),
			zap.Uint("id", id))
	}
	return &clube, nil
}

// Update grava nome e descrição; o criador nunca muda
func (r *ClubeRepository) Update(ctx context.Context, clube *model.Clube) error {
	ctx, span := r.startSpan(ctx, "ClubeRepository.Update", "update",
		attribute.Int64("clube.id", int64(clube.ID)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var atual model.Clube
		if err := tx.Select("id").First(&atual, clube.ID).Error; err != nil {
			return err
		}
		return tx.Model(&atual).Updates(map[string]interface{}{
			"nome":      clube.Nome,
			"descricao": clube.Descricao,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(span, repository.ErrClubeNotFound)
		}
		return r.fail(span, "falha ao atualizar clube", fmt.Errorf("falha ao atualizar clube: %w", err),
			zap.Uint("id", clube.ID))
	}
	return nil
}

// Delete remove o clube, seus livros e as avaliações desses livros
func (r *ClubeRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.startSpan(ctx, "ClubeRepository.Delete", "delete",
		attribute.Int64("clube.id", int64(id)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var clube model.Clube
		if err := tx.Select("id").First(&clube, id).Error; err != nil {
			return err
		}

		livros := tx.Model(&model.Livro{}).Select("id").Where("id_clube = ?", id)
		if err := tx.Where("id_livro IN (?)", livros).Delete(&model.Avaliacao{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_clube = ?", id).Delete(&model.Livro{}).Error; err != nil {
			return err
		}
		return tx.Delete(&clube).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(span, repository.ErrClubeNotFound)
		}
		return r.fail(span, "falha ao remover clube", fmt.Errorf("falha ao remover clube: %w", err),
			zap.Uint("id", id))
	}
	return nil
}
