package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/mester-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mester-scheduler/internal/usecase/conversation"
)

// ThreadHandler expõe o ConversationGateway; cada request vira a fachada
// do papel de quem chama.
type ThreadHandler struct {
	gateway *conversation.Gateway
}

func NewThreadHandler(gateway *conversation.Gateway) *ThreadHandler {
	return &ThreadHandler{gateway: gateway}
}

type OpenThreadRequest struct {
	JobID uint `json:"job_id" binding:"required"`

	// o mester do job; para o mester é opcional e só confere o cliente
	CounterpartID uint `json:"counterpart_id"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *ThreadHandler) participant(c *gin.Context) (conversation.Participant, bool) {
	p, err := h.gateway.As(middleware.Actor(c))
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return p, true
}

func (h *ThreadHandler) Open(c *gin.Context) {
	var req OpenThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "job_id is required.")
		return
	}

	p, ok := h.participant(c)
	if !ok {
		return
	}

	t, err := p.Open(c.Request.Context(), req.JobID, req.CounterpartID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *ThreadHandler) View(c *gin.Context) {
	threadID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid thread id.")
		return
	}

	p, ok := h.participant(c)
	if !ok {
		return
	}

	view, err := p.View(c.Request.Context(), threadID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ThreadHandler) Send(c *gin.Context) {
	threadID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid thread id.")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "empty_message", "Message content is required.")
		return
	}

	p, ok := h.participant(c)
	if !ok {
		return
	}

	res, err := p.Send(c.Request.Context(), threadID, req.Content)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, res)
}

func (h *ThreadHandler) MarkRead(c *gin.Context) {
	threadID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid thread id.")
		return
	}

	p, ok := h.participant(c)
	if !ok {
		return
	}

	n, err := p.MarkRead(c.Request.Context(), threadID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": n})
}
