//go:build integration
// +build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/diillson/bookbridge/internal/adapter/database"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/diillson/bookbridge/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *database.Database {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bookbridge"),
		postgres.WithUsername("bookbridge"),
		postgres.WithPassword("bookbridge"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := testutils.TestDatabaseConfig()
	cfg.Driver = "postgres"
	cfg.DSN = dsn
	cfg.MaxOpenConns = 5
	cfg.MigrationDir = "../../../migrations"

	db, err := database.NewDatabase(ctx, cfg, testutils.TestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPostgres_RepositoriesAndCascade(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	logger := testutils.TestLogger(t)

	usuarios := database.NewUsuarioRepository(db.DB(), logger)
	clubes := database.NewClubeRepository(db.DB(), logger)
	livros := database.NewLivroRepository(db.DB(), logger)
	avaliacoes := database.NewAvaliacaoRepository(db.DB(), logger)
	estatistica := database.NewEstatisticaRepository(db.DB(), logger)

	ana := &model.Usuario{Nome: "Ana", Email: "ana@example.com", SenhaHash: "h"}
	require.NoError(t, usuarios.Create(ctx, ana))
	assert.ErrorIs(t,
		usuarios.Create(ctx, &model.Usuario{Nome: "Outra", Email: "ana@example.com", SenhaHash: "h"}),
		repository.ErrDuplicatedEmail)

	clube := &model.Clube{Nome: "Leitores", IDUsuarioCriador: ana.ID}
	require.NoError(t, clubes.Create(ctx, clube))
	livro := &model.Livro{Titulo: "Dom Casmurro", Autor: "Machado de Assis", IDClube: clube.ID}
	require.NoError(t, livros.Create(ctx, livro))
	require.NoError(t, avaliacoes.Create(ctx, &model.Avaliacao{Nota: 4, IDLivro: livro.ID, IDUsuario: ana.ID}))
	require.NoError(t, avaliacoes.Create(ctx, &model.Avaliacao{Nota: 5, IDLivro: livro.ID, IDUsuario: ana.ID}))

	assert.Error(t, avaliacoes.Create(ctx, &model.Avaliacao{Nota: 0, IDLivro: livro.ID, IDUsuario: ana.ID}))

	est, err := estatistica.Estatisticas(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, est.MediaAvaliacoes, 0.0001)
	assert.Equal(t, int64(1), est.TotalLivros)

	status, err := db.MigrationStatus(ctx)
	require.NoError(t, err)
	for _, st := range status {
		assert.True(t, st.Applied, "migração %d", st.Version)
	}

	require.NoError(t, usuarios.Delete(ctx, ana.ID))
	est, err = estatistica.Estatisticas(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Estatisticas{}, *est)
}
