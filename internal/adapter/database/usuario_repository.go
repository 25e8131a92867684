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

// UsuarioRepository implementa repository.UsuarioRepository
type UsuarioRepository struct {
	baseRepository
}

// NewUsuarioRepository cria um novo repositório de usuários
func NewUsuarioRepository(db *gorm.DB, logger *zap.Logger) repository.UsuarioRepository {
	return &UsuarioRepository{newBaseRepository(db, logger, "usuarios")}
}

// Create insere o usuário em uma transação
func (r *UsuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	ctx, span := r.startSpan(ctx, "UsuarioRepository.Create", "insert")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(usuario).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return repository.ErrDuplicatedEmail
		}
		return r.fail(span, "falha ao criar usuário", fmt.Errorf("falha ao criar usuário: %w", err))
	}

	span.SetAttributes(attribute.Int64("usuario.id", int64(usuario.ID)))
	return nil
}

// List retorna os usuários ordenados por id
func (r *UsuarioRepository) List(ctx context.Context) ([]model.Usuario, error) {
	ctx, span := r.startSpan(ctx, "UsuarioRepository.List", "select")
	defer span.End()

	var usuarios []model.Usuario
	if err := r.db.WithContext(ctx).Order("id").Find(&usuarios).Error; err != nil {
		return nil, r.fail(span, "falha ao listar usuários", fmt.Errorf("falha ao listar usuários: %w", err))
	}

	span.SetAttributes(attribute.Int("usuarios.count", len(usuarios)))
	return usuarios, nil
}

// GetByID busca um usuário pela chave primária
func (r *UsuarioRepository) GetByID(ctx context.Context, id uint) (*model.Usuario, error) {
	ctx, span := r.startSpan(ctx, "UsuarioRepository.GetByID", "select",
		attribute.Int64("usuario.id", int64(id)))
	defer span.End()

	var usuario model.Usuario
	if err := r.db.WithContext(ctx).First(&usuario, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(span, repository.ErrUsuarioNotFound)
		}
		return nil, r.fail(span, "falha ao buscar usuário", fmt.Errorf("falha ao buscar usuário: %w", err),
			zap.Uint("id", id))
	}
	return &usuario, nil
}

// GetByEmail busca um usuário pelo email
func (r *UsuarioRepository) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	ctx, span := r.startSpan(ctx, "UsuarioRepository.GetByEmail", "select")
	defer span.End()

	var usuario model.Usuario
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(span, repository.ErrUsuarioNotFound)
		}
		return nil, r.fail(span, "falha ao buscar usuário por email", fmt.Errorf("falha ao buscar usuário: %w", err))
	}
	return &usuario, nil
}

// Update grava nome, email e hash da senha
func (r *UsuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	ctx, span := r.startSpan(ctx, "UsuarioRepository.Update", "update",
		attribute.Int64("usuario.id", int64(usuario.ID)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var atual model.Usuario
		if err := tx.Select("id").First(&atual, usuario.ID).Error; err != nil {
			return err
		}
		return tx.Model(&atual).Updates(map[string]interface{}{
			"nome":       usuario.Nome,
			"email":      usuario.Email,
			"senha_hash": usuario.SenhaHash,
		}).Error
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(span, repository.ErrUsuarioNotFound)
	case isDuplicateKey(err):
		return repository.ErrDuplicatedEmail
	default:
		return r.fail(span, "falha ao atualizar usuário", fmt.Errorf("falha ao atualizar usuário: %w", err),
			zap.Uint("id", usuario.ID))
	}
}

// Delete remove o usuário, os clubes que criou com seus livros e avaliações,
// e as avaliações que escreveu, tudo na mesma transação
func (r *UsuarioRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := r.startSpan(ctx, "UsuarioRepository.Delete", "delete",
		attribute.Int64("usuario.id", int64(id)))
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var usuario model.Usuario
		if err := tx.Select("id").First(&usuario, id).Error; err != nil {
			return err
		}

		clubes := tx.Model(&model.Clube{}).Select("id").Where("id_usuario_criador = ?", id)
		livros := tx.Model(&model.Livro{}).Select("id").Where("id_clube IN (?)", clubes)

		if err := tx.Where("id_livro IN (?) OR id_usuario = ?", livros, id).Delete(&model.Avaliacao{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_clube IN (?)", clubes).Delete(&model.Livro{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_usuario_criador = ?", id).Delete(&model.Clube{}).Error; err != nil {
			return err
		}
		return tx.Delete(&usuario).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(span, repository.ErrUsuarioNotFound)
		}
		return r.fail(span, "falha ao remover usuário", fmt.Errorf("falha ao remover usuário: %w", err),
			zap.Uint("id", id))
	}
	return nil
}
