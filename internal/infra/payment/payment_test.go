package payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

func TestExternalReference_RoundTrip(t *testing.T) {
	ref := ExternalReference(7, 11)
	assert.Equal(t, "lead:7:11", ref)

	pro, job, err := ParseExternalReference(ref)
	require.NoError(t, err)
	assert.Equal(t, uint(7), pro)
	assert.Equal(t, uint(11), job)
}

func TestParseExternalReference_Invalid(t *testing.T) {
	for _, ref := range []string{"", "lead:7", "order:7:11", "lead:x:11", "lead:7:0"} {
		_, _, err := ParseExternalReference(ref)
		assert.ErrorIs(t, err, ErrInvalidReference, ref)
	}
}

// ===============================
// Mercado Pago
// ===============================

type fakeGetter struct {
	res *payment.Response
	err error
}

func (f fakeGetter) Get(context.Context, int) (*payment.Response, error) {
	return f.res, f.err
}

func TestMercadoPagoConfirm(t *testing.T) {
	m := &MercadoPagoConfirmer{client: fakeGetter{res: &payment.Response{
		ID:                555,
		Status:            "approved",
		ExternalReference: "lead:7:11",
	}}}

	c, err := m.Confirm(context.Background(), 555)
	require.NoError(t, err)
	assert.Equal(t, &Confirmation{ProfessionalID: 7, JobID: 11, Provider: "mercadopago", Reference: "555"}, c)
}

func TestMercadoPagoConfirm_NotApproved(t *testing.T) {
	m := &MercadoPagoConfirmer{client: fakeGetter{res: &payment.Response{
		ID:                555,
		Status:            "pending",
		ExternalReference: "lead:7:11",
	}}}

	_, err := m.Confirm(context.Background(), 555)
	assert.ErrorIs(t, err, ErrIgnored)
}

func TestMercadoPagoConfirm_APIError(t *testing.T) {
	m := &MercadoPagoConfirmer{client: fakeGetter{err: errors.New("timeout")}}

	_, err := m.Confirm(context.Background(), 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrIgnored)
}

// ===============================
// Stripe
// ===============================

const whsec = "whsec_test_secret"

func signed(t *testing.T, eventType, status string, metadata map[string]string) ([]byte, string) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"id":          "evt_test_1",
		"object":      "event",
		"created":     time.Now().Unix(),
		"type":        eventType,
		"api_version": stripe.APIVersion,
		"data": map[string]any{
			"object": map[string]any{
				"id":       "pi_test_1",
				"object":   "payment_intent",
				"status":   status,
				"metadata": metadata,
			},
		},
	})
	require.NoError(t, err)

	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    whsec,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return sp.Payload, sp.Header
}

func TestStripeConfirm(t *testing.T) {
	s := NewStripeConfirmer(whsec, time.Minute)
	body, sig := signed(t, "payment_intent.succeeded", "succeeded", map[string]string{
		"professional_id": "7",
		"job_id":          "11",
	})

	c, err := s.Confirm(body, sig)
	require.NoError(t, err)
	assert.Equal(t, &Confirmation{ProfessionalID: 7, JobID: 11, Provider: "stripe", Reference: "pi_test_1"}, c)
}

func TestStripeConfirm_BadSignature(t *testing.T) {
	s := NewStripeConfirmer("whsec_other", time.Minute)
	body, sig := signed(t, "payment_intent.succeeded", "succeeded", map[string]string{
		"professional_id": "7",
		"job_id":          "11",
	})

	_, err := s.Confirm(body, sig)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.NotErrorIs(t, err, ErrIgnored)
}

func TestStripeConfirm_OtherEventIgnored(t *testing.T) {
	s := NewStripeConfirmer(whsec, time.Minute)
	body, sig := signed(t, "payment_intent.created", "requires_payment_method", nil)

	_, err := s.Confirm(body, sig)
	assert.ErrorIs(t, err, ErrIgnored)
}

func TestStripeConfirm_MissingMetadata(t *testing.T) {
	s := NewStripeConfirmer(whsec, time.Minute)
	body, sig := signed(t, "payment_intent.succeeded", "succeeded", map[string]string{"job_id": "11"})

	_, err := s.Confirm(body, sig)
	assert.ErrorIs(t, err, ErrInvalidReference)
}
