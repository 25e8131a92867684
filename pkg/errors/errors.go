package errors

import (
	"fmt"
	"net/http"
)

// APIError é o corpo de erro da API: {"message": ..., "code": ...}.
// Code é o status HTTP e não é serializado; Reason vai no campo "code".
type APIError struct {
	Code        int         `json:"-"`
	Message     string      `json:"message"`
	Reason      string      `json:"code,omitempty"`
	Details     interface{} `json:"details,omitempty"`
	OriginalErr error       `json:"-"`
}

func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

func New(code int, message string, err error) *APIError {
	return &APIError{
		Code:        code,
		Message:     message,
		OriginalErr: err,
	}
}

func (e *APIError) WithDetails(details interface{}) *APIError {
	e.Details = details
	return e
}

// WithReason define o código legível por máquina enviado ao cliente
func (e *APIError) WithReason(reason string) *APIError {
	e.Reason = reason
	return e
}

// defaults guarda mensagem e código padrão por status
var defaults = map[int][2]string{
	http.StatusBadRequest:          {"Requisição inválida", "requisicao_invalida"},
	http.StatusUnauthorized:        {"Autenticação necessária", "nao_autorizado"},
	http.StatusForbidden:           {"Acesso negado", "acesso_negado"},
	http.StatusNotFound:            {"Recurso não encontrado", "nao_encontrado"},
	http.StatusConflict:            {"Conflito", "conflito"},
	http.StatusTooManyRequests:     {"Muitas requisições", "limite_excedido"},
	http.StatusInternalServerError: {"Erro interno do servidor", "erro_interno"},
}

func withDefaults(code int, message string, err error) *APIError {
	d := defaults[code]
	if message == "" {
		message = d[0]
	}
	return New(code, message, err).WithReason(d[1])
}

func BadRequest(message string, err error) *APIError {
	return withDefaults(http.StatusBadRequest, message, err)
}

func Unauthorized(message string, err error) *APIError {
	return withDefaults(http.StatusUnauthorized, message, err)
}

// Forbidden é usado só quando o recurso existe e o chamador não é o dono
func Forbidden(message string, err error) *APIError {
	return withDefaults(http.StatusForbidden, message, err)
}

func NotFound(message string, err error) *APIError {
	return withDefaults(http.StatusNotFound, message, err)
}

func Conflict(message string, err error) *APIError {
	return withDefaults(http.StatusConflict, message, err)
}

func TooManyRequests(message string, err error) *APIError {
	return withDefaults(http.StatusTooManyRequests, message, err)
}

// InternalServer nunca expõe err ao cliente; a mensagem padrão é genérica
func InternalServer(message string, err error) *APIError {
	return withDefaults(http.StatusInternalServerError, message, err)
}
