package http

import (
	"net/http"

	"github.com/diillson/bookbridge/internal/app/estatistica"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EstatisticaHandler struct {
	responder
	service *estatistica.Service
}

func NewEstatisticaHandler(service *estatistica.Service, logger *zap.Logger) *EstatisticaHandler {
	return &EstatisticaHandler{
		responder: responder{logger: logger},
		service:   service,
	}
}

// Get trata GET /estatisticas
func (h *EstatisticaHandler) Get(c *gin.Context) {
	est, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}
