package mocks

import (
	"context"

	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockUsuarioRepository é um mock para repository.UsuarioRepository
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

func (m *MockUsuarioRepository) List(ctx context.Context) ([]model.Usuario, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) GetByID(ctx context.Context, id uint) (*model.Usuario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

func (m *MockUsuarioRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClubeRepository é um mock para repository.ClubeRepository
type MockClubeRepository struct {
	mock.Mock
}

func (m *MockClubeRepository) Create(ctx context.Context, clube *model.Clube) error {
	args := m.Called(ctx, clube)
	return args.Error(0)
}

func (m *MockClubeRepository) List(ctx context.Context) ([]model.Clube, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Clube), args.Error(1)
}

func (m *MockClubeRepository) GetByID(ctx context.Context, id uint) (*model.Clube, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Clube), args.Error(1)
}

func (m *MockClubeRepository) Update(ctx context.Context, clube *model.Clube) error {
	args := m.Called(ctx, clube)
	return args.Error(0)
}

func (m *MockClubeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLivroRepository é um mock para repository.LivroRepository
type MockLivroRepository struct {
	mock.Mock
}

func (m *MockLivroRepository) Create(ctx context.Context, livro *model.Livro) error {
	args := m.Called(ctx, livro)
	return args.Error(0)
}

func (m *MockLivroRepository) ListByClube(ctx context.Context, clubeID uint) ([]model.Livro, error) {
	args := m.Called(ctx, clubeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Livro), args.Error(1)
}

func (m *MockLivroRepository) GetByID(ctx context.Context, id uint) (*model.Livro, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Livro), args.Error(1)
}

func (m *MockLivroRepository) Update(ctx context.Context, livro *model.Livro) error {
	args := m.Called(ctx, livro)
	return args.Error(0)
}

func (m *MockLivroRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAvaliacaoRepository é um mock para repository.AvaliacaoRepository
type MockAvaliacaoRepository struct {
	mock.Mock
}

func (m *MockAvaliacaoRepository) Create(ctx context.Context, avaliacao *model.Avaliacao) error {
	args := m.Called(ctx, avaliacao)
	return args.Error(0)
}

func (m *MockAvaliacaoRepository) ListByLivro(ctx context.Context, livroID uint) ([]model.Avaliacao, error) {
	args := m.Called(ctx, livroID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Avaliacao), args.Error(1)
}

func (m *MockAvaliacaoRepository) GetByID(ctx context.Context, id uint) (*model.Avaliacao, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Avaliacao), args.Error(1)
}

func (m *MockAvaliacaoRepository) Update(ctx context.Context, avaliacao *model.Avaliacao) error {
	args := m.Called(ctx, avaliacao)
	return args.Error(0)
}

func (m *MockAvaliacaoRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEstatisticaRepository é um mock para repository.EstatisticaRepository
type MockEstatisticaRepository struct {
	mock.Mock
}

func (m *MockEstatisticaRepository) Estatisticas(ctx context.Context) (*model.Estatisticas, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Estatisticas), args.Error(1)
}

// MockInvalidator registra as invalidações de estatísticas
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
