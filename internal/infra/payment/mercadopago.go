package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

const (
	ProviderMercadoPago = "mercadopago"
	statusApproved      = "approved"
)

type paymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoConfirmer nunca confia no corpo do webhook: o pagamento é
// sempre relido na API.
type MercadoPagoConfirmer struct {
	client paymentGetter
}

func NewMercadoPagoConfirmer(accessToken string) (*MercadoPagoConfirmer, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPagoConfirmer{client: payment.NewClient(cfg)}, nil
}

func (m *MercadoPagoConfirmer) Confirm(ctx context.Context, paymentID int) (*Confirmation, error) {
	res, err := m.client.Get(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment %d: %w", paymentID, err)
	}

	if res.Status != statusApproved {
		return nil, ErrIgnored
	}

	pro, job, err := ParseExternalReference(res.ExternalReference)
	if err != nil {
		return nil, err
	}

	return &Confirmation{
		ProfessionalID: pro,
		JobID:          job,
		Provider:       ProviderMercadoPago,
		Reference:      strconv.Itoa(res.ID),
	}, nil
}
