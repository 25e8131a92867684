package repository

import (
	"context"
	"errors"

	"github.com/diillson/bookbridge/internal/domain/model"
)

var (
	ErrUsuarioNotFound   = errors.New("usuário não encontrado")
	ErrClubeNotFound     = errors.New("clube não encontrado")
	ErrLivroNotFound     = errors.New("livro não encontrado")
	ErrAvaliacaoNotFound = errors.New("avaliação não encontrada")
	ErrDuplicatedEmail   = errors.New("email duplicado")
)

// UsuarioRepository define o armazenamento de usuários
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	List(ctx context.Context) ([]model.Usuario, error)
	GetByID(ctx context.Context, id uint) (*model.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*model.Usuario, error)
	Update(ctx context.Context, usuario *model.Usuario) error
	// Delete remove o usuário junto com seus clubes, livros e avaliações
	Delete(ctx context.Context, id uint) error
}

// ClubeRepository define o armazenamento de clubes
type ClubeRepository interface {
	Create(ctx context.Context, clube *model.Clube) error
	List(ctx context.Context) ([]model.Clube, error)
	GetByID(ctx context.Context, id uint) (*model.Clube, error)
	Update(ctx context.Context, clube *model.Clube) error
	// Delete remove o clube junto com seus livros e avaliações
	Delete(ctx context.Context, id uint) error
}

// LivroRepository define o armazenamento de livros
type LivroRepository interface {
	Create(ctx context.Context, livro *model.Livro) error
	ListByClube(ctx context.Context, clubeID uint) ([]model.Livro, error)
	GetByID(ctx context.Context, id uint) (*model.Livro, error)
	Update(ctx context.Context, livro *model.Livro) error
	// Delete remove o livro junto com suas avaliações
	Delete(ctx context.Context, id uint) error
}

// AvaliacaoRepository define o armazenamento de avaliações
type AvaliacaoRepository interface {
	Create(ctx context.Context, avaliacao *model.Avaliacao) error
	ListByLivro(ctx context.Context, livroID uint) ([]model.Avaliacao, error)
	GetByID(ctx context.Context, id uint) (*model.Avaliacao, error)
	Update(ctx context.Context, avaliacao *model.Avaliacao) error
	Delete(ctx context.Context, id uint) error
}

// EstatisticaRepository calcula os agregados da plataforma
type EstatisticaRepository interface {
	Estatisticas(ctx context.Context) (*model.Estatisticas, error)
}
