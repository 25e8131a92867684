package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration registra um arquivo SQL já aplicado
type Migration struct {
	ID        uint  `gorm:"primaryKey"`
	Version   int64 `gorm:"uniqueIndex"`
	Name      string
	AppliedAt time.Time
}

func (Migration) TableName() string {
	return "schema_migrations"
}

// MigrationFile é um arquivo YYYYMMDDHHMMSS_nome.sql do diretório de migrações
type MigrationFile struct {
	Version int64
	Name    string
	Path    string
}

// MigrationStatus indica se um arquivo SQL já foi aplicado
type MigrationStatus struct {
	Version   int64
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// MigrationManager aplica os arquivos SQL versionados depois do AutoMigrate
type MigrationManager struct {
	db        *gorm.DB
	logger    *zap.Logger
	directory string
}

func NewMigrationManager(db *gorm.DB, logger *zap.Logger, directory string) *MigrationManager {
	return &MigrationManager{
		db:        db,
		logger:    logger,
		directory: directory,
	}
}

// Initialize cria a tabela schema_migrations
func (m *MigrationManager) Initialize(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("falha ao criar tabela de migrações: %w", err)
	}
	return nil
}

// ApplyMigrations aplica, em ordem de versão, os arquivos ainda não registrados.
// Cada arquivo roda em uma transação própria junto com o seu registro.
func (m *MigrationManager) ApplyMigrations(ctx context.Context) error {
	applied, files, err := m.load(ctx)
	if err != nil {
		return err
	}

	for _, file := range files {
		log := m.logger.With(zap.Int64("version", file.Version), zap.String("name", file.Name))
		if _, ok := applied[file.Version]; ok {
			log.Debug("Migração já aplicada")
			continue
		}

		log.Info("Aplicando migração")
		if err := m.apply(ctx, file); err != nil {
			return err
		}
		log.Info("Migração aplicada com sucesso")
	}

	return nil
}

func (m *MigrationManager) apply(ctx context.Context, file MigrationFile) error {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("falha ao ler arquivo de migração %s: %w", file.Path, err)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range splitSQLCommands(string(content)) {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("falha ao executar migração %d: %w", file.Version, err)
			}
		}

		record := Migration{Version: file.Version, Name: file.Name, AppliedAt: time.Now()}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("falha ao registrar migração %d: %w", file.Version, err)
		}
		return nil
	})
}

// Status lista os arquivos de migração e o estado de cada um
func (m *MigrationManager) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, files, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(files))
	for _, f := range files {
		st := MigrationStatus{Version: f.Version, Name: f.Name}
		if mig, ok := applied[f.Version]; ok {
			at := mig.AppliedAt
			st.Applied = true
			st.AppliedAt = &at
		}
		status = append(status, st)
	}
	return status, nil
}

// load devolve as migrações registradas por versão e os arquivos ordenados
func (m *MigrationManager) load(ctx context.Context) (map[int64]Migration, []MigrationFile, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, nil, err
	}

	var records []Migration
	if err := m.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, nil, fmt.Errorf("falha ao buscar migrações aplicadas: %w", err)
	}
	applied := make(map[int64]Migration, len(records))
	for _, r := range records {
		applied[r.Version] = r
	}

	files, err := m.findMigrationFiles()
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao listar arquivos de migração: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })

	return applied, files, nil
}

// splitSQLCommands separa o conteúdo em comandos por ';'. Comentários são
// descartados e ';' dentro de strings não divide o comando.
func splitSQLCommands(sql string) []string {
	var (
		commands     []string
		current      strings.Builder
		inString     bool
		lineComment  bool
		blockComment bool
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" && stmt != ";" {
			commands = append(commands, stmt)
		}
		current.Reset()
	}

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		next := byte(0)
		if i+1 < len(sql) {
			next = sql[i+1]
		}

		switch {
		case lineComment:
			if ch == '\n' {
				lineComment = false
				current.WriteByte(ch)
			}
			continue
		case blockComment:
			if ch == '*' && next == '/' {
				blockComment = false
				i++
			}
			continue
		case inString:
			if ch == '\'' {
				inString = false
			}
		case ch == '-' && next == '-':
			lineComment = true
			continue
		case ch == '/' && next == '*':
			blockComment = true
			i++
			continue
		case ch == '\'':
			inString = true
		case ch == ';':
			current.WriteByte(ch)
			flush()
			continue
		}

		current.WriteByte(ch)
	}
	flush()

	return commands
}

func (m *MigrationManager) findMigrationFiles() ([]MigrationFile, error) {
	if m.directory == "" {
		return nil, nil
	}
	if _, err := os.Stat(m.directory); errors.Is(err, fs.ErrNotExist) {
		m.logger.Debug("Diretório de migrações ausente", zap.String("dir", m.directory))
		return nil, nil
	}

	var files []MigrationFile
	err := filepath.WalkDir(m.directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sql") {
			return nil
		}

		prefix, rest, ok := strings.Cut(d.Name(), "_")
		if !ok {
			m.logger.Warn("Formato de arquivo de migração inválido", zap.String("file", d.Name()))
			return nil
		}
		version, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil {
			m.logger.Warn("Versão de migração inválida", zap.String("file", d.Name()))
			return nil
		}

		files = append(files, MigrationFile{
			Version: version,
			Name:    strings.TrimSuffix(rest, ".sql"),
			Path:    path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// CreateMigration cria um arquivo vazio com a versão no instante atual
func (m *MigrationManager) CreateMigration(name string) (string, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if name == "" {
		return "", errors.New("nome da migração vazio")
	}

	if err := os.MkdirAll(m.directory, 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório: %w", err)
	}

	now := time.Now()
	fullPath := filepath.Join(m.directory, fmt.Sprintf("%s_%s.sql", now.Format("20060102150405"), name))

	header := fmt.Sprintf("-- %s\n-- criada em %s\n", name, now.Format(time.RFC3339))
	if err := os.WriteFile(fullPath, []byte(header), 0o644); err != nil {
		return "", fmt.Errorf("falha ao criar arquivo: %w", err)
	}

	return fullPath, nil
}
