package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/mester-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mester-scheduler/internal/usecase/proposal"
)

// ======================================================
// HANDLER
// ======================================================

type ProposalHandler struct {
	createUC *proposal.CreateProposal
	listUC   *proposal.ListThreadProposals
	getUC    *proposal.GetProposal
	acceptUC *proposal.AcceptProposal
	rejectUC *proposal.RejectProposal
	cancelUC *proposal.CancelProposal
}

func NewProposalHandler(d proposal.Deps) *ProposalHandler {
	return &ProposalHandler{
		createUC: proposal.NewCreateProposal(d),
		listUC:   proposal.NewListThreadProposals(d),
		getUC:    proposal.NewGetProposal(d),
		acceptUC: proposal.NewAcceptProposal(d),
		rejectUC: proposal.NewRejectProposal(d),
		cancelUC: proposal.NewCancelProposal(d),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProposalRequest struct {
	ProposedStart   time.Time       `json:"proposed_start" binding:"required"` // RFC3339
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	Location        string          `json:"location"`
	Notes           string          `json:"notes"`
	OfferMessage    string          `json:"offer_message"`
}

type RespondProposalRequest struct {
	Response string `json:"response"`
}

// ======================================================
// CREATE / READ
// ======================================================

func (h *ProposalHandler) Create(c *gin.Context) {
	threadID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid thread id.")
		return
	}

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid proposal payload.")
		return
	}

	p, err := h.createUC.Execute(c.Request.Context(), middleware.Actor(c), proposal.CreateProposalInput{
		ThreadID:        threadID,
		ProposedStart:   req.ProposedStart,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Currency:        req.Currency,
		Location:        req.Location,
		Notes:           req.Notes,
		OfferMessage:    req.OfferMessage,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, p)
}

func (h *ProposalHandler) ListByThread(c *gin.Context) {
	threadID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid thread id.")
		return
	}

	list, err := h.listUC.Execute(c.Request.Context(), middleware.Actor(c), threadID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *ProposalHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid proposal id.")
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// TRANSITIONS
// ======================================================

// Accept devolve a proposta aceita junto com o agendamento criado.
func (h *ProposalHandler) Accept(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid proposal id.")
		return
	}

	var req RespondProposalRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.acceptUC.Execute(c.Request.Context(), middleware.Actor(c), id, req.Response)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ProposalHandler) Reject(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid proposal id.")
		return
	}

	var req RespondProposalRequest
	_ = c.ShouldBindJSON(&req)

	p, err := h.rejectUC.Execute(c.Request.Context(), middleware.Actor(c), id, req.Response)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *ProposalHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid proposal id.")
		return
	}

	p, err := h.cancelUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, p)
}
