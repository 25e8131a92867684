package http

import (
	"net/http"

	"github.com/diillson/bookbridge/internal/app/avaliacao"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvaliacaoHandler struct {
	responder
	service *avaliacao.Service
}

func NewAvaliacaoHandler(service *avaliacao.Service, logger *zap.Logger) *AvaliacaoHandler {
	return &AvaliacaoHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

// avaliacaoRequest serve para criação e atualização; nota ausente é nil
type avaliacaoRequest struct {
	Comentario *string `json:"comentario"`
	Nota       *int    `json:"nota"`
}

type avaliacaoResponse struct {
	ID         uint    `json:"id"`
	Comentario *string `json:"comentario"`
	Nota       int     `json:"nota"`
	IDUsuario  uint    `json:"id_usuario"`
}

func newAvaliacaoResponse(a model.Avaliacao) avaliacaoResponse {
	return avaliacaoResponse{ID: a.ID, Comentario: a.Comentario, Nota: a.Nota, IDUsuario: a.IDUsuario}
}

// Create trata POST /livros/:id/avaliacoes
func (h *AvaliacaoHandler) Create(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	livroID, ok := h.pathID(c, repository.ErrLivroNotFound)
	if !ok {
		return
	}

	var req avaliacaoRequest
	if !h.bind(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), livroID, usuario.ID, avaliacao.CreateInput{
		Comentario: req.Comentario,
		Nota:       req.Nota,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdResponse{Message: "Avaliação criada com sucesso!", ID: a.ID})
}

// ListByLivro trata GET /livros/:id/avaliacoes, que é público
func (h *AvaliacaoHandler) ListByLivro(c *gin.Context) {
	livroID, ok := h.pathID(c, repository.ErrLivroNotFound)
	if !ok {
		return
	}

	avaliacoes, err := h.service.ListByLivro(c.Request.Context(), livroID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]avaliacaoResponse, 0, len(avaliacoes))
	for _, a := range avaliacoes {
		resp = append(resp, newAvaliacaoResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

// Update trata PUT /avaliacoes/:id
func (h *AvaliacaoHandler) Update(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, repository.ErrAvaliacaoNotFound)
	if !ok {
		return
	}

	var req avaliacaoRequest
	if !h.bind(c, &req) {
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, usuario.ID, avaliacao.UpdateInput{
		Comentario: req.Comentario,
		Nota:       req.Nota,
	}); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Avaliação atualizada com sucesso!"})
}

// Delete trata DELETE /avaliacoes/:id
func (h *AvaliacaoHandler) Delete(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, repository.ErrAvaliacaoNotFound)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, usuario.ID); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Avaliação deletada com sucesso!"})
}
