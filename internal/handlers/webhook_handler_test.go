package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/mester-scheduler/internal/logger"
	"github.com/BruksfildServices01/mester-scheduler/internal/usecase/lead"
)

type fakeMercadoPago struct {
	conf *payment.Confirmation
	err  error
	got  []int
}

func (f *fakeMercadoPago) Confirm(_ context.Context, paymentID int) (*payment.Confirmation, error) {
	f.got = append(f.got, paymentID)
	return f.conf, f.err
}

type webhookFixture struct {
	router *gin.Engine
	store  *memory.Store
	mp     *fakeMercadoPago
	events *events.Recorder
}

const whsec = "whsec_handler_test"

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &webhookFixture{
		store:  memory.NewStore(),
		mp:     &fakeMercadoPago{},
		events: &events.Recorder{},
	}

	grant := lead.NewGrantAccess(f.store.Leads(), f.events, logger.Discard(), nil)
	h := NewWebhookHandler(f.mp, payment.NewStripeConfirmer(whsec, time.Minute), grant, logger.Discard())

	f.router = gin.New()
	f.router.POST("/webhooks/mercadopago", h.MercadoPago)
	f.router.POST("/webhooks/stripe", h.Stripe)
	return f
}

func (f *webhookFixture) post(path, body string, header http.Header) (*httptest.ResponseRecorder, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var out struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out.Status
}

func (f *webhookFixture) hasAccess(t *testing.T) bool {
	t.Helper()
	ok, err := f.store.Leads().HasAccess(context.Background(), 7, 11)
	require.NoError(t, err)
	return ok
}

// ======================================================
// MERCADO PAGO
// ======================================================

func TestMercadoPagoWebhook_GrantsOnce(t *testing.T) {
	f := newWebhookFixture(t)
	f.mp.conf = &payment.Confirmation{ProfessionalID: 7, JobID: 11, Provider: "mercadopago", Reference: "123"}

	w, status := f.post("/webhooks/mercadopago", `{"type":"payment","data":{"id":"123"}}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "granted", status)
	assert.Equal(t, []int{123}, f.mp.got)
	assert.True(t, f.hasAccess(t))

	// reentrega do mesmo pagamento
	w, status = f.post("/webhooks/mercadopago?type=payment&data.id=123", ``, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "already_granted", status)

	assert.Equal(t, []string{events.LeadAccessGranted}, f.events.Types())
}

func TestMercadoPagoWebhook_IgnoredAndErrors(t *testing.T) {
	f := newWebhookFixture(t)

	_, status := f.post("/webhooks/mercadopago", `{"type":"merchant_order","data":{"id":"5"}}`, nil)
	assert.Equal(t, "ignored", status)
	assert.Empty(t, f.mp.got)

	w, _ := f.post("/webhooks/mercadopago", `{"type":"payment","data":{"id":"abc"}}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.mp.err = payment.ErrIgnored
	w, status = f.post("/webhooks/mercadopago", `{"type":"payment","data":{"id":"9"}}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ignored", status)

	f.mp.err = errors.New("api down")
	w, _ = f.post("/webhooks/mercadopago", `{"type":"payment","data":{"id":"9"}}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.False(t, f.hasAccess(t))
}

func TestWebhook_DisabledProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(nil, nil, nil, logger.Discard())

	r := gin.New()
	r.POST("/mp", h.MercadoPago)
	r.POST("/stripe", h.Stripe)

	for _, path := range []string{"/mp", "/stripe"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

// ======================================================
// STRIPE
// ======================================================

func stripePayload(t *testing.T, secret string) (string, http.Header) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"id":          "evt_h_1",
		"object":      "event",
		"created":     time.Now().Unix(),
		"type":        "payment_intent.succeeded",
		"api_version": stripe.APIVersion,
		"data": map[string]any{
			"object": map[string]any{
				"id":     "pi_h_1",
				"object": "payment_intent",
				"status": "succeeded",
				"metadata": map[string]string{
					"professional_id": "7",
					"job_id":          "11",
				},
			},
		},
	})
	require.NoError(t, err)

	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})

	h := http.Header{}
	h.Set("Stripe-Signature", sp.Header)
	return string(sp.Payload), h
}

func TestStripeWebhook(t *testing.T) {
	f := newWebhookFixture(t)

	body, header := stripePayload(t, "whsec_someone_else")
	w, _ := f.post("/webhooks/stripe", body, header)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, f.hasAccess(t))

	body, header = stripePayload(t, whsec)
	w, status := f.post("/webhooks/stripe", body, header)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "granted", status)
	assert.True(t, f.hasAccess(t))
}
