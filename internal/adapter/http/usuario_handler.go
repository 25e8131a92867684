package http

import (
	"net/http"

	"github.com/diillson/bookbridge/internal/app/usuario"
	"github.com/diillson/bookbridge/internal/domain/model"
	"github.com/diillson/bookbridge/internal/domain/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UsuarioHandler struct {
	responder
	service *usuario.Service
}

func NewUsuarioHandler(service *usuario.Service, logger *zap.Logger) *UsuarioHandler {
	return &UsuarioHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

type createUsuarioRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type updateUsuarioRequest struct {
	Nome  *string `json:"nome"`
	Email *string `json:"email"`
	Senha *string `json:"senha"`
}

// usuarioResponse é a projeção pública; o hash da senha nunca sai da API
type usuarioResponse struct {
	ID    uint   `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

func newUsuarioResponse(u model.Usuario) usuarioResponse {
	return usuarioResponse{ID: u.ID, Nome: u.Nome, Email: u.Email}
}

// Create trata POST /usuarios
func (h *UsuarioHandler) Create(c *gin.Context) {
	var req createUsuarioRequest
	if !h.bind(c, &req) {
		return
	}

	u, err := h.service.Create(c.Request.Context(), usuario.CreateInput{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: req.Senha,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdResponse{Message: "Usuário criado com sucesso!", ID: u.ID})
}

// List trata GET /usuarios
func (h *UsuarioHandler) List(c *gin.Context) {
	usuarios, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]usuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		resp = append(resp, newUsuarioResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// Update trata PUT /usuarios/:id
func (h *UsuarioHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, repository.ErrUsuarioNotFound)
	if !ok {
		return
	}

	var req updateUsuarioRequest
	if !h.bind(c, &req) {
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, usuario.UpdateInput{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: req.Senha,
	}); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Usuário atualizado com sucesso!"})
}

// Delete trata DELETE /usuarios/:id
func (h *UsuarioHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, repository.ErrUsuarioNotFound)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Usuário deletado com sucesso!"})
}
