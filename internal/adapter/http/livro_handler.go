package http

import (
	"net/http"

	"github.com/diillson/bookbridge/internal/app/livro"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LivroHandler struct {
	responder
	service *livro.Service
}

func NewLivroHandler(service *livro.Service, logger *zap.Logger) *LivroHandler {
	return &LivroHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

type createLivroRequest struct {
	Titulo string `json:"titulo"`
	Autor  string `json:"autor"`
}

type updateLivroRequest struct {
	Titulo *string `json:"titulo"`
	Autor  *string `json:"autor"`
}

type livroResponse struct {
	ID     uint   `json:"id"`
	Titulo string `json:"titulo"`
	Autor  string `json:"autor"`
}

func newLivroResponse(l model.Livro) livroResponse {
	return livroResponse{ID: l.ID, Titulo: l.Titulo, Autor: l.Autor}
}

// Create trata POST /clubes/:id/livros
func (h *LivroHandler) Create(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	clubeID, ok := h.pathID(c, repository.ErrClubeNotFound)
	if !ok {
		return
	}

	var req createLivroRequest
	if !h.bind(c, &req) {
		return
	}

	l, err := h.service.Create(c.Request.Context(), clubeID, usuario.ID, livro.CreateInput{
		Titulo: req.Titulo,
		Autor:  req.Autor,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdResponse{Message: "Livro adicionado com sucesso!", ID: l.ID})
}

// ListByClube trata GET /clubes/:id/livros
func (h *LivroHandler) ListByClube(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	clubeID, ok := h.pathID(c, repository.ErrClubeNotFound)
	if !ok {
		return
	}

	livros, err := h.service.ListByClube(c.Request.Context(), clubeID, usuario.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]livroResponse, 0, len(livros))
	for _, l := range livros {
		resp = append(resp, newLivroResponse(l))
	}
	c.JSON(http.StatusOK, resp)
}

// Update trata PUT /livros/:id
func (h *LivroHandler) Update(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, repository.ErrLivroNotFound)
	if !ok {
		return
	}

	var req updateLivroRequest
	if !h.bind(c, &req) {
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, usuario.ID, livro.UpdateInput{
		Titulo: req.Titulo,
		Autor:  req.Autor,
	}); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Livro atualizado com sucesso!"})
}

// Delete trata DELETE /livros/:id
func (h *LivroHandler) Delete(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, repository.ErrLivroNotFound)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, usuario.ID); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Livro deletado com sucesso!"})
}
