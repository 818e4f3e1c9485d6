package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mester-scheduler/internal/audit"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditReader interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	reader AuditReader
}

func NewAuditLogsHandler(reader AuditReader) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)
	if !actor.IsMester() {
		httperr.Forbidden(c, "mester_only", "Only professionals have an audit trail.")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := audit.Query{
		ProfessionalID: actor.UserID,
		Action:         c.Query("action"),
		Entity:         c.Query("entity"),
		Page:           page,
		Limit:          limit,
	}

	// --------------------------------------------------
	// Filtros de data (dias inteiros, UTC)
	// --------------------------------------------------

	if from, err := parseDate(c.Query("from")); err == nil {
		q.From = from
	}
	if to, err := parseDate(c.Query("to")); err == nil {
		q.To = to.Add(24 * time.Hour)
	}

	logs, total, err := h.reader.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
