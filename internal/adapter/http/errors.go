package http

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/diillson/bookbridge/internal/domain"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/diillson/bookbridge/internal/infra/middleware"
	apierrors "github.com/diillson/bookbridge/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// responder traduz erros de domínio para respostas HTTP
type responder struct {
	logger *zap.Logger
}

// toAPIError mapeia os erros conhecidos. Erros desconhecidos viram 500 sem detalhes.
func toAPIError(err error) *apierrors.APIError {
	var apiErr *apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, domain.ErrDadosIncompletos):
		return apierrors.BadRequest("Dados incompletos", err).WithReason("dados_incompletos")
	case errors.Is(err, domain.ErrNotaInvalida):
		return apierrors.BadRequest("A nota deve ser um número inteiro entre 1 e 5", err).WithReason("nota_invalida")
	case errors.Is(err, domain.ErrEmailEmUso):
		return apierrors.Conflict("Email já está em uso", err).WithReason("email_em_uso")
	case errors.Is(err, domain.ErrCredenciaisInvalidas):
		return apierrors.Unauthorized("Credenciais inválidas", err).WithReason("credenciais_invalidas")
	case errors.Is(err, domain.ErrAcessoNegado):
		return apierrors.Forbidden("Acesso negado", err)
	case errors.Is(err, repository.ErrUsuarioNotFound):
		return apierrors.NotFound("Usuário não encontrado", err)
	case errors.Is(err, repository.ErrClubeNotFound):
		return apierrors.NotFound("Clube não encontrado ou acesso negado", err)
	case errors.Is(err, repository.ErrLivroNotFound):
		return apierrors.NotFound("Livro não encontrado", err)
	case errors.Is(err, repository.ErrAvaliacaoNotFound):
		return apierrors.NotFound("Avaliação não encontrada ou acesso negado", err)
	default:
		return apierrors.InternalServer("", err)
	}
}

func (r responder) fail(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	if apiErr.Code >= 500 {
		r.logger.Error("erro ao processar requisição",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(apiErr.Code, apiErr)
}

// bind decodifica o corpo JSON; corpo ausente ou malformado conta como dados incompletos
func (r responder) bind(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "nota" {
			r.fail(c, domain.ErrNotaInvalida)
			return false
		}
		r.logger.Debug("corpo da requisição inválido", zap.Error(err))
		r.fail(c, domain.ErrDadosIncompletos)
		return false
	}
	return true
}

// pathID lê o parâmetro :id; ids não numéricos ou zero respondem notFound
func (r responder) pathID(c *gin.Context, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		r.fail(c, notFound)
		return 0, false
	}
	return uint(id), true
}

// identity retorna o usuário autenticado pelo middleware
func (r responder) identity(c *gin.Context) (*model.Usuario, bool) {
	usuario, ok := middleware.UsuarioFromContext(c)
	if !ok {
		r.fail(c, apierrors.Unauthorized("", nil).WithReason("token_ausente"))
		return nil, false
	}
	return usuario, true
}

// messageResponse é o corpo das respostas de sucesso sem dados
type messageResponse struct {
	Message string `json:"message"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}
