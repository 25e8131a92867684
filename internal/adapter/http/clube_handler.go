package http

import (
	"net/http"

	"github.com/diillson/bookbridge/internal/app/clube"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ClubeHandler struct {
	responder
	service *clube.Service
}

func NewClubeHandler(service *clube.Service, logger *zap.Logger) *ClubeHandler {
	return &ClubeHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

type createClubeRequest struct {
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
}

type updateClubeRequest struct {
	Nome      *string `json:"nome"`
	Descricao *string `json:"descricao"`
}

type clubeResponse struct {
	ID        uint    `json:"id"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
}

type clubeCreatedResponse struct {
	Message          string `json:"message"`
	ID               uint   `json:"id"`
	IDUsuarioCriador uint   `json:"id_usuario_criador"`
}

func newClubeResponse(cl model.Clube) clubeResponse {
	return clubeResponse{ID: cl.ID, Nome: cl.Nome, Descricao: cl.Descricao}
}

// Create trata POST /clubes; o criador é o usuário do token
func (h *ClubeHandler) Create(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}

	var req createClubeRequest
	if !h.bind(c, &req) {
		return
	}

	cl, err := h.service.Create(c.Request.Context(), usuario.ID, clube.CreateInput{
		Nome:      req.Nome,
		Descricao: req.Descricao,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, clubeCreatedResponse{
		Message:          "Clube criado com sucesso!",
		ID:               cl.ID,
		IDUsuarioCriador: cl.IDUsuarioCriador,
	})
}

// List trata GET /clubes
func (h *ClubeHandler) List(c *gin.Context) {
	clubes, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]clubeResponse, 0, len(clubes))
	for _, cl := range clubes {
		resp = append(resp, newClubeResponse(cl))
	}
	c.JSON(http.StatusOK, resp)
}

// Update trata PUT /clubes/:id
func (h *ClubeHandler) Update(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, repository.ErrClubeNotFound)
	if !ok {
		return
	}

	var req updateClubeRequest
	if !h.bind(c, &req) {
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, usuario.ID, clube.UpdateInput{
		Nome:      req.Nome,
		Descricao: req.Descricao,
	}); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Clube atualizado com sucesso!"})
}

// Delete trata DELETE /clubes/:id
func (h *ClubeHandler) Delete(c *gin.Context) {
	usuario, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, repository.ErrClubeNotFound)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, usuario.ID); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Clube deletado com sucesso!"})
}
