package payment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	ProviderStripe = "stripe"

	eventPaymentIntentSucceeded = "payment_intent.succeeded"
)

type StripeConfirmer struct {
	secret    string
	tolerance time.Duration
}

func NewStripeConfirmer(secret string, tolerance time.Duration) *StripeConfirmer {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &StripeConfirmer{secret: secret, tolerance: tolerance}
}

func (s *StripeConfirmer) Enabled() bool {
	return s.secret != ""
}

// Confirm valida a assinatura e extrai o lead dos metadados do PaymentIntent.
func (s *StripeConfirmer) Confirm(body []byte, signature string) (*Confirmation, error) {
	evt, err := webhook.ConstructEventWithOptions(body, signature, s.secret, webhook.ConstructEventOptions{
		Tolerance:                s.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if string(evt.Type) != eventPaymentIntentSucceeded {
		return nil, ErrIgnored
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(evt.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("stripe payment intent payload: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, ErrIgnored
	}

	pro, err := metadataID(intent.Metadata, "professional_id")
	if err != nil {
		return nil, err
	}
	job, err := metadataID(intent.Metadata, "job_id")
	if err != nil {
		return nil, err
	}

	return &Confirmation{
		ProfessionalID: pro,
		JobID:          job,
		Provider:       ProviderStripe,
		Reference:      intent.ID,
	}, nil
}

func metadataID(md map[string]string, key string) (uint, error) {
	v, ok := md[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidReference, key)
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidReference, key)
	}
	return uint(id), nil
}
