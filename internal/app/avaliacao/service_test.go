package avaliacao_test

import (
	"testing"

	"github.com/diillson/bookbridge/internal/app/avaliacao"
	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/diillson/bookbridge/internal/mocks"
	"github.com/diillson/bookbridge/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) (*avaliacao.Service, *mocks.MockAvaliacaoRepository, *mocks.MockLivroRepository, *mocks.MockInvalidator) {
	repo := new(mocks.MockAvaliacaoRepository)
	livros := new(mocks.MockLivroRepository)
	inv := new(mocks.MockInvalidator)
	return avaliacao.NewService(repo, livros, inv, testutils.TestLogger(t)), repo, livros, inv
}

func TestAvaliacaoService_Create(t *testing.T) {
	t.Run("valid review", func(t *testing.T) {
		service, repo, livros, inv := newService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		livros.On("GetByID", mock.Anything, uint(3)).Return(&model.Livro{ID: 3}, nil).Once()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Avaliacao) bool {
			return a.Nota == 5 && a.IDLivro == 3 && a.IDUsuario == 7 && *a.Comentario == "Ótimo"
		})).Return(nil).Once()
		inv.On("Invalidate", mock.Anything).Once()

		_, err := service.Create(ctx, 3, 7, avaliacao.CreateInput{Nota: ptr(5), Comentario: ptr("Ótimo")})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		inv.AssertExpectations(t)
	})

	t.Run("nota is validated before the book lookup", func(t *testing.T) {
		service, _, livros, _ := newService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		for _, nota := range []int{0, 6, -1} {
			_, err := service.Create(ctx, 404, 7, avaliacao.CreateInput{Nota: ptr(nota)})
			assert.ErrorIs(t, err, domain.ErrNotaInvalida, "nota %d", nota)
		}
		_, err := service.Create(ctx, 404, 7, avaliacao.CreateInput{})
		assert.ErrorIs(t, err, domain.ErrDadosIncompletos)

		livros.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown book", func(t *testing.T) {
		service, repo, livros, _ := newService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		livros.On("GetByID", mock.Anything, uint(404)).Return(nil, repository.ErrLivroNotFound).Once()

		_, err := service.Create(ctx, 404, 7, avaliacao.CreateInput{Nota: ptr(1)})
		assert.ErrorIs(t, err, repository.ErrLivroNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAvaliacaoService_ListByLivro(t *testing.T) {
	service, repo, livros, _ := newService(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	livros.On("GetByID", mock.Anything, uint(3)).Return(&model.Livro{ID: 3}, nil).Once()
	livros.On("GetByID", mock.Anything, uint(4)).Return(nil, repository.ErrLivroNotFound).Once()
	repo.On("ListByLivro", mock.Anything, uint(3)).Return([]model.Avaliacao{}, nil).Once()

	got, err := service.ListByLivro(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = service.ListByLivro(ctx, 4)
	assert.ErrorIs(t, err, repository.ErrLivroNotFound)
}

func TestAvaliacaoService_UpdateDelete(t *testing.T) {
	existente := func() *model.Avaliacao {
		return &model.Avaliacao{ID: 2, Nota: 3, IDLivro: 3, IDUsuario: 7}
	}

	t.Run("author updates nota", func(t *testing.T) {
		service, repo, _, inv := newService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(2)).Return(existente(), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		inv.On("Invalidate", mock.Anything).Once()

		updated, err := service.Update(ctx, 2, 7, avaliacao.UpdateInput{Nota: ptr(4)})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Nota)
		assert.Nil(t, updated.Comentario)
	})

	t.Run("invalid nota on update", func(t *testing.T) {
		service, repo, _, _ := newService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(2)).Return(existente(), nil).Once()

		_, err := service.Update(ctx, 2, 7, avaliacao.UpdateInput{Nota: ptr(9)})
		assert.ErrorIs(t, err, domain.ErrNotaInvalida)
	})

	t.Run("other user's review looks missing", func(t *testing.T) {
		service, repo, _, _ := newService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(2)).Return(existente(), nil)

		_, err := service.Update(ctx, 2, 8, avaliacao.UpdateInput{Nota: ptr(1)})
		assert.ErrorIs(t, err, repository.ErrAvaliacaoNotFound)
		assert.ErrorIs(t, service.Delete(ctx, 2, 8), repository.ErrAvaliacaoNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("author deletes", func(t *testing.T) {
		service, repo, _, inv := newService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(2)).Return(existente(), nil).Once()
		repo.On("Delete", mock.Anything, uint(2)).Return(nil).Once()
		inv.On("Invalidate", mock.Anything).Once()

		require.NoError(t, service.Delete(ctx, 2, 7))
		inv.AssertExpectations(t)
	})
}
