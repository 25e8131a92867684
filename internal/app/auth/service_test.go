package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/diillson/bookbridge/internal/app/auth"
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

func setup(t *testing.T) (*auth.AuthService, *mocks.MockUsuarioRepository, *security.KeyManager) {
	logger := testutils.TestLogger(t)
	km, err := security.NewKeyManager(testutils.TestSecret, time.Hour, logger)
	require.NoError(t, err)

	repo := new(mocks.MockUsuarioRepository)
	return auth.NewAuthService(km, repo, logger), repo, km
}

func TestAuthService_Login(t *testing.T) {
	hash, err := security.HashPassword("s3nha")
	require.NoError(t, err)
	usuario := &model.Usuario{ID: 5, Nome: "Ana", Email: "ana@example.com", SenhaHash: hash}

	t.Run("valid credentials", func(t *testing.T) {
		service, repo, km := setup(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(usuario, nil).Once()

		token, err := service.Login(ctx, " ana@example.com ", "s3nha")
		require.NoError(t, err)

		claims, err := km.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(5), claims.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, repo, _ := setup(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(usuario, nil).Once()

		_, err := service.Login(ctx, "ana@example.com", "errada")
		assert.ErrorIs(t, err, domain.ErrCredenciaisInvalidas)
	})

	t.Run("unknown email gives the same error", func(t *testing.T) {
		service, repo, _ := setup(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("GetByEmail", mock.Anything, "nada@example.com").
			Return(nil, repository.ErrUsuarioNotFound).Once()

		_, err := service.Login(ctx, "nada@example.com", "s3nha")
		assert.ErrorIs(t, err, domain.ErrCredenciaisInvalidas)
	})

	t.Run("missing fields", func(t *testing.T) {
		service, repo, _ := setup(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Login(ctx, "  ", "s3nha")
		assert.ErrorIs(t, err, domain.ErrDadosIncompletos)
		_, err = service.Login(ctx, "ana@example.com", "")
		assert.ErrorIs(t, err, domain.ErrDadosIncompletos)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		service, repo, _ := setup(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		dbErr := errors.New("conexão perdida")
		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, dbErr).Once()

		_, err := service.Login(ctx, "ana@example.com", "s3nha")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("resolves user", func(t *testing.T) {
		service, repo, km := setup(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		token, err := km.GenerateToken(9)
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, uint(9)).Return(&model.Usuario{ID: 9}, nil).Once()

		usuario, err := service.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, uint(9), usuario.ID)
	})

	t.Run("deleted user", func(t *testing.T) {
		service, repo, km := setup(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		token, err := km.GenerateToken(9)
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, uint(9)).Return(nil, repository.ErrUsuarioNotFound).Once()

		_, err = service.Authenticate(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUsuarioInvalido)
	})

	t.Run("invalid token", func(t *testing.T) {
		service, repo, _ := setup(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Authenticate(ctx, "invalido")
		assert.ErrorIs(t, err, security.ErrTokenInvalid)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
