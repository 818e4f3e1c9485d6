package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mester-scheduler/internal/middleware"
)

// MeHandler devolve a identidade resolvida do token; o cadastro do usuário
// vive em outro serviço.
type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":   actor.UserID,
			"role": actor.Role,
		},
	})
}
