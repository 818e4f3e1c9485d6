package conversation

import (
	"context"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// Participant é a visão de um lado da conversa sobre o mesmo Gateway.
type Participant interface {
	Open(ctx context.Context, jobID, counterpartID uint) (*models.Thread, error)
	Send(ctx context.Context, threadID uint, content string) (*SendResult, error)
	View(ctx context.Context, threadID uint) (*ThreadView, error)
	MarkRead(ctx context.Context, threadID uint) (int64, error)
}

// As devolve a fachada do papel de actor.
func (g *Gateway) As(actor identity.Actor) (Participant, error) {
	switch actor.Role {
	case identity.RoleMester:
		return &MesterSide{side{g: g, actor: actor}}, nil
	case identity.RoleCustomer:
		return &CustomerSide{side{g: g, actor: actor}}, nil
	}
	return nil, httperr.ErrForbidden("invalid_role")
}

type side struct {
	g     *Gateway
	actor identity.Actor
}

func (s side) Open(ctx context.Context, jobID, counterpartID uint) (*models.Thread, error) {
	return s.g.OpenThread(ctx, s.actor, jobID, counterpartID)
}

func (s side) Send(ctx context.Context, threadID uint, content string) (*SendResult, error) {
	return s.g.SendMessage(ctx, s.actor, threadID, content)
}

func (s side) View(ctx context.Context, threadID uint) (*ThreadView, error) {
	return s.g.GetThreadView(ctx, s.actor, threadID)
}

func (s side) MarkRead(ctx context.Context, threadID uint) (int64, error) {
	return s.g.MarkRead(ctx, s.actor, threadID)
}

// MesterSide: o lado pagante; leituras e envios passam pelo gate e ele
// só reabre threads que o cliente criou.
type MesterSide struct {
	side
}

// CustomerSide sempre vê o thread inteiro.
type CustomerSide struct {
	side
}
