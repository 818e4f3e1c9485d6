package conversation

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/lead"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/message"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

const (
	MaxMessageLength = 4000

	LockedPlaceholder = "Unlock this lead to read the customer's message."
)

// ===============================
// View policy
// ===============================

type ViewPolicy string

const (
	// PolicyStrict: sem lead comprado nenhuma mensagem do cliente aparece e
	// o mester não envia nada.
	PolicyStrict ViewPolicy = "strict"

	// PolicyFirstMessageFree: o mester lê o que o cliente escreveu antes da
	// primeira resposta dele e pode enviar essa primeira resposta. Tudo
	// depois disso fica travado até a compra.
	PolicyFirstMessageFree ViewPolicy = "first_message_free"
)

func ParseViewPolicy(s string) ViewPolicy {
	if ViewPolicy(strings.ToLower(strings.TrimSpace(s))) == PolicyFirstMessageFree {
		return PolicyFirstMessageFree
	}
	return PolicyStrict
}

// ===============================
// Views
// ===============================

type MessageView struct {
	ID                  uint      `json:"id"`
	SenderID            uint      `json:"sender_id"`
	SenderRole          string    `json:"sender_role"`
	Content             string    `json:"content"`
	Locked              bool      `json:"locked"`
	ContainsContactInfo bool      `json:"contains_contact_info"`
	IsRead              bool      `json:"is_read"`
	CreatedAt           time.Time `json:"created_at"`
}

type ThreadView struct {
	ThreadID         uint          `json:"thread_id"`
	JobID            uint          `json:"job_id"`
	ProfessionalID   uint          `json:"professional_id"`
	CustomerID       uint          `json:"customer_id"`
	HasAccess        bool          `json:"has_access"`
	PurchaseRequired bool          `json:"purchase_required"`
	Messages         []MessageView `json:"messages"`
}

type SendResult struct {
	Message MessageView `json:"message"`

	// aviso não bloqueante: parte do texto foi mascarada
	ContactInfoRemoved bool `json:"contact_info_removed"`
}

func visible(m *models.Message) MessageView {
	return MessageView{
		ID:                  m.ID,
		SenderID:            m.SenderID,
		SenderRole:          m.SenderRole,
		Content:             m.StoredContent,
		ContainsContactInfo: m.ContainsContactInfo,
		IsRead:              m.IsRead,
		CreatedAt:           m.CreatedAt,
	}
}

func locked(m *models.Message) MessageView {
	return MessageView{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderRole: m.SenderRole,
		Content:    LockedPlaceholder,
		Locked:     true,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

// ===============================
// Gateway
// ===============================

// Gateway junta o gate de lead, o redator e o repositório de mensagens.
// Vale para os dois lados; ver As para as fachadas por papel.
type Gateway struct {
	threads message.Repository
	leads   lead.Repository
	events  events.Emitter
	metrics *metrics.Metrics
	log     *slog.Logger
	clock   timezone.Clock
	policy  ViewPolicy
}

func NewGateway(
	threads message.Repository,
	leads lead.Repository,
	emitter events.Emitter,
	m *metrics.Metrics,
	log *slog.Logger,
	clock timezone.Clock,
	policy ViewPolicy,
) *Gateway {
	return &Gateway{
		threads: threads,
		leads:   leads,
		events:  emitter,
		metrics: m,
		log:     log,
		clock:   clock,
		policy:  policy,
	}
}

// thread carrega o thread e confirma que actor participa com o papel certo.
func (g *Gateway) thread(ctx context.Context, actor identity.Actor, threadID uint) (*models.Thread, error) {
	t, err := g.threads.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsMester() && t.ProfessionalID == actor.UserID:
		return t, nil
	case !actor.IsMester() && t.CustomerID == actor.UserID:
		return t, nil
	}
	return nil, httperr.ErrNotFound("thread_not_found")
}

// --------------------------------------------------
// Open
// --------------------------------------------------

// OpenThread: só o cliente cria o thread (job, mester), já que o job é dele.
// O mester apenas reabre um thread existente; counterpartID é opcional para
// ele e, se vier, precisa bater com o cliente do thread.
func (g *Gateway) OpenThread(
	ctx context.Context,
	actor identity.Actor,
	jobID uint,
	counterpartID uint,
) (*models.Thread, error) {

	if jobID == 0 {
		return nil, httperr.ErrValidation("invalid_job")
	}
	if counterpartID == actor.UserID {
		return nil, httperr.ErrValidation("invalid_counterpart")
	}

	if actor.IsMester() {
		t, err := g.threads.FindThread(ctx, jobID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if counterpartID != 0 && t.CustomerID != counterpartID {
			return nil, httperr.ErrNotFound("thread_not_found")
		}
		return t, nil
	}

	if counterpartID == 0 {
		return nil, httperr.ErrValidation("invalid_counterpart")
	}

	t, err := g.threads.GetOrCreateThread(ctx, &models.Thread{
		JobID:          jobID,
		ProfessionalID: counterpartID,
		CustomerID:     actor.UserID,
	})
	if err != nil {
		return nil, err
	}

	// o job pertence a outro cliente
	if t.CustomerID != actor.UserID {
		return nil, httperr.ErrNotFound("thread_not_found")
	}
	return t, nil
}

// --------------------------------------------------
// Send
// --------------------------------------------------

func (g *Gateway) SendMessage(
	ctx context.Context,
	actor identity.Actor,
	threadID uint,
	content string,
) (*SendResult, error) {

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, httperr.ErrValidation("empty_message")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, httperr.ErrValidation("message_too_long")
	}

	t, err := g.thread(ctx, actor, threadID)
	if err != nil {
		return nil, err
	}

	receiverID := t.ProfessionalID
	firstReplyOnly := false
	if actor.IsMester() {
		receiverID = t.CustomerID

		firstReplyOnly, err = g.mesterSendMode(ctx, t)
		if err != nil {
			return nil, err
		}
	}

	stored, flagged := message.Redact(content)
	if flagged {
		g.metrics.MessageRedacted()
		g.log.InfoContext(ctx, "contact info removed from message",
			"thread_id", t.ID,
			"sender_id", actor.UserID,
		)
	}

	now := g.clock.Now()
	msg := &models.Message{
		ThreadID:            t.ID,
		SenderID:            actor.UserID,
		ReceiverID:          receiverID,
		SenderRole:          string(actor.Role),
		RawContent:          content,
		StoredContent:       stored,
		ContainsContactInfo: flagged,
		CreatedAt:           now,
	}

	if firstReplyOnly {
		created, err := g.threads.CreateFirstReply(ctx, msg)
		if err != nil {
			return nil, err
		}
		if !created {
			return nil, g.refuseSend(ctx, t)
		}
	} else if err := g.threads.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	g.events.Emit(events.New(events.MessageSent, "message", msg.ID, now).
		For(t.ProfessionalID, t.CustomerID).
		With("thread_id", t.ID).
		With("sender_role", msg.SenderRole).
		With("contains_contact_info", flagged))

	return &SendResult{Message: visible(msg), ContactInfoRemoved: flagged}, nil
}

// mesterSendMode decide se o mester pode enviar. Sem lead comprado, em
// first_message_free só a primeira resposta passa, gravada via
// CreateFirstReply; nos outros casos o envio é recusado, nunca enfileirado.
func (g *Gateway) mesterSendMode(ctx context.Context, t *models.Thread) (firstReplyOnly bool, err error) {
	ok, err := g.leads.HasAccess(ctx, t.ProfessionalID, t.JobID)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}

	if g.policy == PolicyFirstMessageFree {
		return true, nil
	}
	return false, g.refuseSend(ctx, t)
}

func (g *Gateway) refuseSend(ctx context.Context, t *models.Thread) error {
	g.metrics.SendRefused()
	g.log.WarnContext(ctx, "send refused, lead not purchased",
		"thread_id", t.ID,
		"professional_id", t.ProfessionalID,
		"job_id", t.JobID,
	)
	return httperr.ErrAccessDenied("purchase_required")
}

// --------------------------------------------------
// View
// --------------------------------------------------

func (g *Gateway) GetThreadView(
	ctx context.Context,
	actor identity.Actor,
	threadID uint,
) (*ThreadView, error) {

	t, err := g.thread(ctx, actor, threadID)
	if err != nil {
		return nil, err
	}

	msgs, err := g.threads.ListThreadMessages(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	view := &ThreadView{
		ThreadID:       t.ID,
		JobID:          t.JobID,
		ProfessionalID: t.ProfessionalID,
		CustomerID:     t.CustomerID,
		HasAccess:      true,
		Messages:       make([]MessageView, 0, len(msgs)),
	}

	// o lado do cliente sempre vê tudo
	if !actor.IsMester() {
		for i := range msgs {
			view.Messages = append(view.Messages, visible(&msgs[i]))
		}
		return view, nil
	}

	ok, err := g.leads.HasAccess(ctx, t.ProfessionalID, t.JobID)
	if err != nil {
		return nil, err
	}
	view.HasAccess = ok
	view.PurchaseRequired = !ok

	freeUntil := -1
	if !ok && g.policy == PolicyFirstMessageFree {
		freeUntil = firstMesterMessage(msgs)
		if freeUntil < 0 {
			freeUntil = len(msgs)
		}
	}

	for i := range msgs {
		m := &msgs[i]
		switch {
		case ok, m.SenderRole == string(identity.RoleMester), i < freeUntil:
			view.Messages = append(view.Messages, visible(m))
		default:
			view.Messages = append(view.Messages, locked(m))
		}
	}

	return view, nil
}

// firstMesterMessage devolve o índice da primeira mensagem do mester, ou -1.
func firstMesterMessage(msgs []models.Message) int {
	for i := range msgs {
		if msgs[i].SenderRole == string(identity.RoleMester) {
			return i
		}
	}
	return -1
}

// --------------------------------------------------
// Read receipts
// --------------------------------------------------

func (g *Gateway) MarkRead(
	ctx context.Context,
	actor identity.Actor,
	threadID uint,
) (int64, error) {

	t, err := g.thread(ctx, actor, threadID)
	if err != nil {
		return 0, err
	}
	return g.threads.MarkThreadRead(ctx, t.ID, actor.UserID, g.clock.Now())
}
