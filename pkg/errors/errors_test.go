package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := stderrors.New("falha no driver")

	tests := []struct {
		name   string
		err    *APIError
		code   int
		reason string
	}{
		{"bad request", BadRequest("", nil), http.StatusBadRequest, "requisicao_invalida"},
		{"unauthorized", Unauthorized("", nil), http.StatusUnauthorized, "nao_autorizado"},
		{"forbidden", Forbidden("", nil), http.StatusForbidden, "acesso_negado"},
		{"not found", NotFound("", nil), http.StatusNotFound, "nao_encontrado"},
		{"conflict", Conflict("Email já está em uso", nil), http.StatusConflict, "conflito"},
		{"too many", TooManyRequests("", nil), http.StatusTooManyRequests, "limite_excedido"},
		{"internal", InternalServer("", cause), http.StatusInternalServerError, "erro_interno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.reason, tt.err.Reason)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestAPIError_JSONHidesCause(t *testing.T) {
	cause := stderrors.New("pq: relation usuarios does not exist")
	apiErr := InternalServer("", cause)

	assert.ErrorIs(t, apiErr, cause)

	data, err := json.Marshal(apiErr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Erro interno do servidor","code":"erro_interno"}`, string(data))
}

func TestAPIError_WithReason(t *testing.T) {
	apiErr := Unauthorized("", nil).WithReason("token_expirado")
	assert.Equal(t, "token_expirado", apiErr.Reason)
	assert.Equal(t, "Autenticação necessária", apiErr.Error())
}
