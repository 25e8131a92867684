package app_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diillson/bookbridge/internal/app"
	"github.com/diillson/bookbridge/internal/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t      *testing.T
	router *gin.Engine
}

func newClient(t *testing.T) (*client, *app.App) {
	gin.SetMode(gin.TestMode)

	application, err := app.NewApp(context.Background(), testutils.TestConfig(t), testutils.TestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })

	return &client{t: t, router: application.Router()}, application
}

func (c *client) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	headers := map[string]string{}
	if token != "" {
		headers = testutils.BearerHeader(token)
	}
	return testutils.MakeRequest(c.t, c.router, method, path, body, headers)
}

func (c *client) json(resp *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	testutils.ParseResponse(c.t, resp, &body)
	return body
}

func (c *client) cadastrar(nome, email string) (uint, string) {
	c.t.Helper()
	resp := c.do(http.MethodPost, "/usuarios", map[string]string{"nome": nome, "email": email, "senha": "s3nha"}, "")
	testutils.RequireHTTPStatus(c.t, resp, http.StatusCreated)
	id := uint(c.json(resp)["id"].(float64))

	resp = c.do(http.MethodPost, "/login", map[string]string{"email": email, "senha": "s3nha"}, "")
	testutils.RequireHTTPStatus(c.t, resp, http.StatusOK)
	return id, c.json(resp)["token"].(string)
}

func TestApp_ReviewFlow(t *testing.T) {
	c, _ := newClient(t)

	anaID, ana := c.cadastrar("Ana", "ana@example.com")

	resp := c.do(http.MethodPost, "/clubes", map[string]string{"nome": "Leitores", "descricao": "Clássicos"}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	created := c.json(resp)
	assert.Equal(t, "Clube criado com sucesso!", created["message"])
	assert.Equal(t, float64(anaID), created["id_usuario_criador"])
	clubeID := uint(created["id"].(float64))

	resp = c.do(http.MethodPost, fmt.Sprintf("/clubes/%d/livros", clubeID),
		map[string]string{"titulo": "Dom Casmurro", "autor": "Machado de Assis"}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	livroID := uint(c.json(resp)["id"].(float64))

	avaliacoesPath := fmt.Sprintf("/livros/%d/avaliacoes", livroID)

	resp = c.do(http.MethodPost, avaliacoesPath, map[string]any{"nota": 6}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "nota_invalida", c.json(resp)["code"])

	resp = c.do(http.MethodPost, avaliacoesPath, map[string]any{"nota": "cinco"}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "nota_invalida", c.json(resp)["code"])

	resp = c.do(http.MethodPost, avaliacoesPath, map[string]any{"nota": 3, "comentario": "Bom"}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	avaliacaoID := uint(c.json(resp)["id"].(float64))

	resp = c.do(http.MethodGet, avaliacoesPath, nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var lista []map[string]any
	testutils.ParseResponse(t, resp, &lista)
	require.Len(t, lista, 1)
	assert.Equal(t, float64(3), lista[0]["nota"])
	assert.Equal(t, "Bom", lista[0]["comentario"])
	assert.Equal(t, float64(anaID), lista[0]["id_usuario"])

	resp = c.do(http.MethodPut, fmt.Sprintf("/avaliacoes/%d", avaliacaoID), map[string]any{"nota": 5}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = c.do(http.MethodGet, "/estatisticas", nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	est := c.json(resp)
	assert.Equal(t, float64(1), est["total_usuarios"])
	assert.Equal(t, float64(1), est["total_livros"])
	assert.Equal(t, float64(5), est["media_avaliacoes"])

	resp = c.do(http.MethodDelete, fmt.Sprintf("/livros/%d", livroID), nil, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = c.do(http.MethodGet, avaliacoesPath, nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

	// mutações invalidam o cache de estatísticas
	resp = c.do(http.MethodGet, "/estatisticas", nil, "")
	est = c.json(resp)
	assert.Equal(t, float64(0), est["total_livros"])
	assert.Equal(t, float64(0), est["media_avaliacoes"])
}

func TestApp_Ownership(t *testing.T) {
	c, _ := newClient(t)

	_, ana := c.cadastrar("Ana", "ana@example.com")
	_, bia := c.cadastrar("Bia", "bia@example.com")

	resp := c.do(http.MethodPost, "/clubes", map[string]string{"nome": "Clube da Ana"}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	clubeID := uint(c.json(resp)["id"].(float64))

	resp = c.do(http.MethodPost, fmt.Sprintf("/clubes/%d/livros", clubeID),
		map[string]string{"titulo": "Iracema", "autor": "José de Alencar"}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	livroID := uint(c.json(resp)["id"].(float64))

	resp = c.do(http.MethodPut, fmt.Sprintf("/clubes/%d", clubeID), map[string]string{"nome": "Roubado"}, bia)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

	resp = c.do(http.MethodGet, fmt.Sprintf("/clubes/%d/livros", clubeID), nil, bia)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

	resp = c.do(http.MethodPost, fmt.Sprintf("/clubes/%d/livros", clubeID), map[string]string{"titulo": "X", "autor": "Y"}, bia)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

	resp = c.do(http.MethodPut, fmt.Sprintf("/livros/%d", livroID), map[string]string{"titulo": "X"}, bia)
	testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)

	resp = c.do(http.MethodDelete, fmt.Sprintf("/livros/%d", livroID), nil, bia)
	testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)

	// qualquer usuário autenticado pode avaliar, mas só o autor altera
	resp = c.do(http.MethodPost, fmt.Sprintf("/livros/%d/avaliacoes", livroID), map[string]any{"nota": 4}, bia)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	avaliacaoID := uint(c.json(resp)["id"].(float64))

	resp = c.do(http.MethodDelete, fmt.Sprintf("/avaliacoes/%d", avaliacaoID), nil, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

	resp = c.do(http.MethodDelete, fmt.Sprintf("/avaliacoes/%d", avaliacaoID), nil, bia)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = c.do(http.MethodDelete, fmt.Sprintf("/clubes/%d", clubeID), nil, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
}

func TestApp_Usuarios(t *testing.T) {
	c, _ := newClient(t)

	resp := c.do(http.MethodPost, "/usuarios", map[string]string{"nome": "Ana", "email": "ana@example.com"}, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Dados incompletos", c.json(resp)["message"])

	resp = c.do(http.MethodPost, "/usuarios", "{not json", "")
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)

	anaID, ana := c.cadastrar("Ana", "ana@example.com")

	resp = c.do(http.MethodPost, "/usuarios", map[string]string{"nome": "Outra", "email": "ana@example.com", "senha": "x"}, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusConflict)

	resp = c.do(http.MethodGet, "/usuarios", nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.NotContains(t, resp.Body.String(), "senha")

	resp = c.do(http.MethodPost, "/login", map[string]string{"email": "ana@example.com", "senha": "errada"}, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.Equal(t, "Credenciais inválidas", c.json(resp)["message"])

	resp = c.do(http.MethodPut, fmt.Sprintf("/usuarios/%d", anaID), map[string]string{"nome": "Ana Maria"}, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = c.do(http.MethodPut, "/usuarios/999", map[string]string{"nome": "X"}, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

	resp = c.do(http.MethodPut, "/usuarios/abc", map[string]string{"nome": "X"}, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)

	resp = c.do(http.MethodDelete, fmt.Sprintf("/usuarios/%d", anaID), nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	// o token continua assinado, mas o usuário não existe mais
	resp = c.do(http.MethodPost, "/clubes", map[string]string{"nome": "Fantasma"}, ana)
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.Equal(t, "usuario_invalido", c.json(resp)["code"])
}

func TestApp_Protected(t *testing.T) {
	c, _ := newClient(t)

	resp := c.do(http.MethodPost, "/clubes", map[string]string{"nome": "Sem token"}, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.Equal(t, "token_ausente", c.json(resp)["code"])

	resp = c.do(http.MethodPost, "/clubes", map[string]string{"nome": "Token ruim"}, "nao-e-jwt")
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.Equal(t, "token_invalido", c.json(resp)["code"])

	resp = c.do(http.MethodGet, "/nao-existe", nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
}

func TestApp_HealthAndMetrics(t *testing.T) {
	c, application := newClient(t)

	resp := c.do(http.MethodGet, "/health", nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = c.do(http.MethodGet, "/health/readiness", nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Equal(t, "UP", c.json(resp)["status"])

	resp = c.do(http.MethodGet, "/health/details", nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = c.do(http.MethodGet, application.Config.Metrics.PrometheusPath, nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.True(t, strings.Contains(resp.Body.String(), "bookbridge_requests_total"))

	require.NoError(t, application.DB.Close())
	resp = c.do(http.MethodGet, "/health/readiness", nil, "")
	testutils.RequireHTTPStatus(t, resp, http.StatusServiceUnavailable)
}
