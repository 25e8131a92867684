package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/bookbridge/internal/adapter/database"
	"github.com/diillson/bookbridge/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationManager(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_indices.sql"), []byte(`
-- índice de apoio; o ponto e vírgula no comentário não divide o comando;
CREATE INDEX idx_teste_livros ON livros (id_clube);
CREATE INDEX idx_teste_avaliacoes ON avaliacoes (id_usuario);
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("ignorado"), 0o600))

	cfg := testutils.TestDatabaseConfig()
	cfg.MigrationDir = dir
	db, err := database.NewDatabase(ctx, cfg, testutils.TestLogger(t))
	require.NoError(t, err)
	defer db.Close()

	status, err := db.MigrationStatus(ctx)
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.Equal(t, int64(20250101000000), status[0].Version)
	assert.True(t, status[0].Applied)
	assert.NotNil(t, status[0].AppliedAt)

	// reaplicar não executa o arquivo de novo
	require.NoError(t, db.Migrate(ctx))

	path, err := db.CreateMigration("Nova Tabela!")
	require.NoError(t, err)
	assert.FileExists(t, path)

	status, err = db.MigrationStatus(ctx)
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.False(t, status[1].Applied)
}

func TestMigrationManager_CreateRequiresName(t *testing.T) {
	manager := database.NewMigrationManager(nil, testutils.TestLogger(t), t.TempDir())
	_, err := manager.CreateMigration("  ")
	assert.Error(t, err)
}
