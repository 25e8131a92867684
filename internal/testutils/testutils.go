package testutils

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diillson/bookbridge/internal/adapter/database"
	"github.com/diillson/bookbridge/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestSecret tem o tamanho mínimo exigido pelo KeyManager
const TestSecret = "segredo-de-teste-com-mais-de-32-bytes!!"

// TestLogger cria um logger zap para testes
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestConfig retorna uma configuração com SQLite em memória e cache local
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Database = TestDatabaseConfig()
	cfg.Auth.JWTSecret = TestSecret
	cfg.Auth.TokenExpiration = time.Hour
	cfg.Cache.Enabled = true
	cfg.Cache.Type = "memory"
	cfg.Metrics.Enabled = true
	cfg.Logging.Production = false
	cfg.Tracing.Enabled = false
	return cfg
}

// TestDatabaseConfig usa uma única conexão para que o banco em memória sobreviva ao teste
func TestDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:          "sqlite",
		DSN:             "file::memory:?_pragma=foreign_keys(1)",
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: 0,
		LogLevel:        "silent",
		SlowThreshold:   time.Second,
		MigrationDir:    "",
		PrepareStmt:     false,
	}
}

// NewTestDB cria um banco SQLite em memória já migrado e o fecha ao fim do teste
func NewTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.NewDatabase(context.Background(), TestDatabaseConfig(), TestLogger(t))
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// BearerHeader monta o cabeçalho Authorization para MakeRequest
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// SetupTestRouter configura um router Gin para testes
func SetupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())
	return router
}

// MakeRequest executa uma requisição HTTP de teste
func MakeRequest(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody io.Reader

	if body != nil {
		switch v := body.(type) {
		case string:
			reqBody = strings.NewReader(v)
		case []byte:
			reqBody = strings.NewReader(string(v))
		default:
			jsonData, err := json.Marshal(body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBody = strings.NewReader(string(jsonData))
		}
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err, "Failed to create HTTP request")

	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Adicionar cabeçalhos personalizados
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	return resp
}

// ParseResponse analisa a resposta JSON para uma estrutura
func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, dst interface{}) {
	require.NotNil(t, resp, "Response recorder is nil")

	err := json.Unmarshal(resp.Body.Bytes(), dst)
	require.NoError(t, err, "Failed to parse response: %s", resp.Body.String())
}

// ContextWithTimeout cria um contexto com timeout para testes
func ContextWithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// CheckError verifica se um erro contém uma mensagem específica
func CheckError(t *testing.T, err error, message string) {
	require.Error(t, err, "Expected an error but got nil")
	require.Contains(t, err.Error(), message, "Error message does not contain expected text")
}

// RequireHTTPStatus verifica o status HTTP da resposta
func RequireHTTPStatus(t *testing.T, resp *httptest.ResponseRecorder, status int) {
	require.Equal(t, status, resp.Code, "Expected HTTP status %d but got %d, body: %s",
		status, resp.Code, resp.Body.String())
}

// RequireJSONContentType verifica se o Content-Type da resposta é JSON
func RequireJSONContentType(t *testing.T, resp *httptest.ResponseRecorder) {
	contentType := resp.Header().Get("Content-Type")
	require.Contains(t, contentType, "application/json",
		"Expected Content-Type to contain application/json but got %s", contentType)
}
