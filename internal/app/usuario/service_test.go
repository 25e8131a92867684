package usuario_test

import (
	"testing"

	"github.com/diillson/bookbridge/internal/app/usuario"
	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/diillson/bookbridge/internal/mocks"
	"github.com/diillson/bookbridge/internal/testutils"
	"github.com/diillson/bookbridge/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUsuarioService_Create(t *testing.T) {
	t.Run("hashes password and invalidates stats", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		inv := new(mocks.MockInvalidator)
		service := usuario.NewService(repo, inv, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, repository.ErrUsuarioNotFound).Once()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Usuario")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Usuario).ID = 1
			}).
			Return(nil).Once()
		inv.On("Invalidate", mock.Anything).Once()

		created, err := service.Create(ctx, usuario.CreateInput{Nome: " Ana ", Email: "ana@example.com", Senha: "s3nha"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		assert.Equal(t, "Ana", created.Nome)
		assert.NotEqual(t, "s3nha", created.SenhaHash)
		assert.True(t, security.CheckPassword(created.SenhaHash, "s3nha"))

		repo.AssertExpectations(t)
		inv.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := usuario.NewService(repo, nil, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		for _, in := range []usuario.CreateInput{
			{Email: "ana@example.com", Senha: "s3nha"},
			{Nome: "Ana", Email: "   ", Senha: "s3nha"},
			{Nome: "Ana", Email: "ana@example.com"},
		} {
			_, err := service.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrDadosIncompletos)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email already used", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := usuario.NewService(repo, nil, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&model.Usuario{ID: 3}, nil).Once()

		_, err := service.Create(ctx, usuario.CreateInput{Nome: "Ana", Email: "ana@example.com", Senha: "s3nha"})
		assert.ErrorIs(t, err, domain.ErrEmailEmUso)
	})

	t.Run("duplicate detected by the database", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := usuario.NewService(repo, nil, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, repository.ErrUsuarioNotFound).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicatedEmail).Once()

		_, err := service.Create(ctx, usuario.CreateInput{Nome: "Ana", Email: "ana@example.com", Senha: "s3nha"})
		assert.ErrorIs(t, err, domain.ErrEmailEmUso)
	})
}

func TestUsuarioService_Update(t *testing.T) {
	atual := func() *model.Usuario {
		return &model.Usuario{ID: 1, Nome: "Ana", Email: "ana@example.com", SenhaHash: "hash-antigo"}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := usuario.NewService(repo, nil, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(1)).Return(atual(), nil).Once()
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Usuario")).Return(nil).Once()

		updated, err := service.Update(ctx, 1, usuario.UpdateInput{Nome: ptr("Ana Maria"), Senha: ptr("")})
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", updated.Nome)
		assert.Equal(t, "ana@example.com", updated.Email)
		assert.Equal(t, "hash-antigo", updated.SenhaHash)
	})

	t.Run("new password is hashed", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := usuario.NewService(repo, nil, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(1)).Return(atual(), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		updated, err := service.Update(ctx, 1, usuario.UpdateInput{Senha: ptr("nova")})
		require.NoError(t, err)
		assert.True(t, security.CheckPassword(updated.SenhaHash, "nova"))
	})

	t.Run("email of another user", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := usuario.NewService(repo, nil, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(1)).Return(atual(), nil).Once()
		repo.On("GetByEmail", mock.Anything, "bia@example.com").Return(&model.Usuario{ID: 2}, nil).Once()

		_, err := service.Update(ctx, 1, usuario.UpdateInput{Email: ptr("bia@example.com")})
		assert.ErrorIs(t, err, domain.ErrEmailEmUso)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("blank name", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := usuario.NewService(repo, nil, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(1)).Return(atual(), nil).Once()

		_, err := service.Update(ctx, 1, usuario.UpdateInput{Nome: ptr("  ")})
		assert.ErrorIs(t, err, domain.ErrDadosIncompletos)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(mocks.MockUsuarioRepository)
		service := usuario.NewService(repo, nil, testutils.TestLogger(t))
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByID", mock.Anything, uint(8)).Return(nil, repository.ErrUsuarioNotFound).Once()

		_, err := service.Update(ctx, 8, usuario.UpdateInput{Nome: ptr("X")})
		assert.ErrorIs(t, err, repository.ErrUsuarioNotFound)
	})
}

func TestUsuarioService_Delete(t *testing.T) {
	repo := new(mocks.MockUsuarioRepository)
	inv := new(mocks.MockInvalidator)
	service := usuario.NewService(repo, inv, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	repo.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
	repo.On("Delete", mock.Anything, uint(2)).Return(repository.ErrUsuarioNotFound).Once()
	inv.On("Invalidate", mock.Anything).Once()

	require.NoError(t, service.Delete(ctx, 1))
	assert.ErrorIs(t, service.Delete(ctx, 2), repository.ErrUsuarioNotFound)
	inv.AssertNumberOfCalls(t, "Invalidate", 1)
}
