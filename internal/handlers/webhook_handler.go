package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/payment"
)

const maxWebhookBody = 64 << 10

type MercadoPagoConfirmer interface {
	Confirm(ctx context.Context, paymentID int) (*payment.Confirmation, error)
}

type StripeConfirmer interface {
	Confirm(body []byte, signature string) (*payment.Confirmation, error)
}

type LeadGranter interface {
	Execute(ctx context.Context, c payment.Confirmation) (bool, error)
}

// WebhookHandler é o único caminho até GrantAccess. Confirmers nil deixam
// o provedor desligado (503).
type WebhookHandler struct {
	mercadoPago MercadoPagoConfirmer
	stripe      StripeConfirmer
	grant       LeadGranter
	log         *slog.Logger
}

func NewWebhookHandler(
	mercadoPago MercadoPagoConfirmer,
	stripe StripeConfirmer,
	grant LeadGranter,
	log *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		mercadoPago: mercadoPago,
		stripe:      stripe,
		grant:       grant,
		log:         log,
	}
}

type mercadoPagoNotification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// POST /api/webhooks/mercadopago
func (h *WebhookHandler) MercadoPago(c *gin.Context) {
	if h.mercadoPago == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "provider_disabled", "Mercado Pago is not configured.")
		return
	}

	var n mercadoPagoNotification
	_ = c.ShouldBindJSON(&n)

	// formato antigo (IPN) manda tudo na query string
	if n.Type == "" {
		n.Type = c.Query("type")
		if n.Type == "" {
			n.Type = c.Query("topic")
		}
	}
	if n.Data.ID == "" {
		n.Data.ID = c.Query("data.id")
		if n.Data.ID == "" {
			n.Data.ID = c.Query("id")
		}
	}

	if n.Type != "payment" {
		httpresp.Acknowledge(c, "ignored")
		return
	}

	paymentID, err := strconv.Atoi(n.Data.ID)
	if err != nil || paymentID <= 0 {
		httperr.BadRequest(c, "invalid_payment_id", "Invalid payment id.")
		return
	}

	conf, err := h.mercadoPago.Confirm(c.Request.Context(), paymentID)
	h.finish(c, payment.ProviderMercadoPago, conf, err)
}

// POST /api/webhooks/stripe
func (h *WebhookHandler) Stripe(c *gin.Context) {
	if h.stripe == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "provider_disabled", "Stripe is not configured.")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "Could not read body.")
		return
	}

	conf, err := h.stripe.Confirm(body, c.GetHeader("Stripe-Signature"))
	h.finish(c, payment.ProviderStripe, conf, err)
}

func (h *WebhookHandler) finish(c *gin.Context, provider string, conf *payment.Confirmation, err error) {
	ctx := c.Request.Context()

	switch {
	case err == nil:
	case errors.Is(err, payment.ErrIgnored):
		httpresp.Acknowledge(c, "ignored")
		return
	case errors.Is(err, payment.ErrInvalidSignature):
		h.log.WarnContext(ctx, "webhook signature rejected", "provider", provider)
		httperr.BadRequest(c, "invalid_signature", "Invalid signature.")
		return
	case errors.Is(err, payment.ErrInvalidReference):
		// pagamento que não é de lead; responder 200 evita reenvio
		h.log.WarnContext(ctx, "payment without lead reference", "provider", provider, "error", err)
		httpresp.Acknowledge(c, "ignored")
		return
	default:
		h.log.ErrorContext(ctx, "payment confirmation failed", "provider", provider, "error", err)
		httperr.Internal(c, "payment_confirmation_failed", "Could not confirm payment.")
		return
	}

	created, err := h.grant.Execute(ctx, *conf)
	if err != nil {
		h.log.ErrorContext(ctx, "grant lead access failed",
			"provider", provider,
			"professional_id", conf.ProfessionalID,
			"job_id", conf.JobID,
			"error", err,
		)
		httperr.FromError(c, err)
		return
	}

	status := "granted"
	if !created {
		status = "already_granted"
	}
	httpresp.Acknowledge(c, status)
}
