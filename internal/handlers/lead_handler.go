package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/mester-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mester-scheduler/internal/usecase/lead"
)

type LeadHandler struct {
	hasAccess *lead.HasAccess
}

func NewLeadHandler(hasAccess *lead.HasAccess) *LeadHandler {
	return &LeadHandler{hasAccess: hasAccess}
}

// GET /api/leads/:jobId/access
func (h *LeadHandler) Access(c *gin.Context) {
	jobID, ok := uintParam(c, "jobId")
	if !ok {
		httperr.BadRequest(c, "invalid_job", "Invalid job id.")
		return
	}

	actor := middleware.Actor(c)
	has, err := h.hasAccess.Execute(c.Request.Context(), actor, jobID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	body := gin.H{
		"job_id":     jobID,
		"has_access": has,
	}
	// referência que o checkout precisa mandar ao provedor
	if !has {
		body["external_reference"] = payment.ExternalReference(actor.UserID, jobID)
	}

	c.JSON(http.StatusOK, body)
}
