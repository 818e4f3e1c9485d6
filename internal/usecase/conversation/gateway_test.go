package conversation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/mester-scheduler/internal/logger"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

const (
	proID uint = 7
	cusID uint = 9
	jobID uint = 11
)

var (
	mester = identity.Mester(proID)
	client = identity.Customer(cusID)
)

type fixture struct {
	store  *memory.Store
	gw     *Gateway
	events *events.Recorder
	now    time.Time
}

func setup(t *testing.T, policy ViewPolicy) *fixture {
	t.Helper()

	f := &fixture{
		store:  memory.NewStore(),
		events: &events.Recorder{},
		now:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	// cada mensagem um minuto depois da anterior
	clock := func() time.Time {
		f.now = f.now.Add(time.Minute)
		return f.now
	}
	f.gw = NewGateway(f.store.Messages(), f.store.Leads(), f.events, metrics.New(), logger.Discard(), clock, policy)
	return f
}

func (f *fixture) open(t *testing.T) *models.Thread {
	t.Helper()
	th, err := f.gw.OpenThread(context.Background(), client, jobID, proID)
	require.NoError(t, err)
	return th
}

func (f *fixture) grant(t *testing.T) {
	t.Helper()
	_, err := f.store.Leads().GrantAccess(context.Background(), &models.LeadAccessRecord{ProfessionalID: proID, JobID: jobID, Granted: true})
	require.NoError(t, err)
}

func (f *fixture) send(t *testing.T, actor identity.Actor, threadID uint, text string) *SendResult {
	t.Helper()
	res, err := f.gw.SendMessage(context.Background(), actor, threadID, text)
	require.NoError(t, err)
	return res
}

func contents(v *ThreadView) []string {
	out := make([]string, 0, len(v.Messages))
	for _, m := range v.Messages {
		out = append(out, m.Content)
	}
	return out
}

// ======================================================
// Open
// ======================================================

func TestOpenThread_SameThreadFromBothSides(t *testing.T) {
	f := setup(t, PolicyStrict)
	ctx := context.Background()

	a := f.open(t)
	b, err := f.gw.OpenThread(ctx, mester, jobID, cusID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	// o mesmo job com outro cliente não vaza o thread
	_, err = f.gw.OpenThread(ctx, mester, jobID, 55)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	c, err := f.gw.OpenThread(ctx, mester, jobID, 0)
	require.NoError(t, err)
	assert.Equal(t, a.ID, c.ID)

	_, err = f.gw.OpenThread(ctx, client, 0, proID)
	assert.True(t, httperr.IsBusiness(err, "invalid_job"))
}

func TestOpenThread_OnlyCustomerCreates(t *testing.T) {
	f := setup(t, PolicyStrict)
	ctx := context.Background()
	f.grant(t)

	// mester com lead comprado não escolhe o cliente do job
	_, err := f.gw.OpenThread(ctx, mester, jobID, 555)
	assert.True(t, httperr.IsBusiness(err, "thread_not_found"))

	th, err := f.gw.OpenThread(ctx, client, jobID, proID)
	require.NoError(t, err)
	assert.Equal(t, cusID, th.CustomerID)

	_, err = f.gw.OpenThread(ctx, mester, jobID, 555)
	assert.True(t, httperr.IsBusiness(err, "thread_not_found"))

	// outro cliente não toma o thread do job
	_, err = f.gw.OpenThread(ctx, identity.Customer(555), jobID, proID)
	assert.True(t, httperr.IsBusiness(err, "thread_not_found"))

	_, err = f.gw.OpenThread(ctx, client, jobID, 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_counterpart"))
}

// ======================================================
// Send
// ======================================================

func TestSend_MesterWithoutAccessIsRefused(t *testing.T) {
	f := setup(t, PolicyStrict)
	th := f.open(t)
	f.send(t, client, th.ID, "Need a plumber on Monday")

	_, err := f.gw.SendMessage(context.Background(), mester, th.ID, "Sure, I can come")
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindAccessDenied))
	assert.True(t, httperr.IsBusiness(err, "purchase_required"))

	msgs, err := f.store.Messages().ListThreadMessages(context.Background(), th.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestSend_RedactsAndWarns(t *testing.T) {
	f := setup(t, PolicyStrict)
	th := f.open(t)

	res := f.send(t, client, th.ID, "call me at 555-123-4567 or a@b.com")

	assert.True(t, res.ContactInfoRemoved)
	assert.True(t, res.Message.ContainsContactInfo)
	assert.NotContains(t, res.Message.Content, "555-123-4567")
	assert.NotContains(t, res.Message.Content, "a@b.com")

	msgs, err := f.store.Messages().ListThreadMessages(context.Background(), th.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "call me at 555-123-4567 or a@b.com", msgs[0].RawContent)
	assert.Equal(t, res.Message.Content, msgs[0].StoredContent)
	assert.Equal(t, proID, msgs[0].ReceiverID)
}

func TestSend_MesterWithAccessIsRedactedToo(t *testing.T) {
	f := setup(t, PolicyStrict)
	th := f.open(t)
	f.grant(t)

	res := f.send(t, mester, th.ID, "my site: www.kovacs-villany.hu")
	assert.True(t, res.ContactInfoRemoved)
	assert.NotContains(t, res.Message.Content, "kovacs-villany")
	assert.Contains(t, f.events.Types(), events.MessageSent)
}

func TestSend_Validation(t *testing.T) {
	f := setup(t, PolicyStrict)
	th := f.open(t)
	ctx := context.Background()

	_, err := f.gw.SendMessage(ctx, client, th.ID, "   ")
	assert.True(t, httperr.IsBusiness(err, "empty_message"))

	_, err = f.gw.SendMessage(ctx, identity.Customer(55), th.ID, "hi")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	// o id do cliente com papel de mester não passa
	_, err = f.gw.SendMessage(ctx, identity.Mester(cusID), th.ID, "hi")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

// ======================================================
// View
// ======================================================

func TestView_StrictLocksCustomerMessages(t *testing.T) {
	f := setup(t, PolicyStrict)
	th := f.open(t)
	f.send(t, client, th.ID, "The sink is leaking")
	f.send(t, client, th.ID, "Second floor, door 4")
	ctx := context.Background()

	view, err := f.gw.GetThreadView(ctx, mester, th.ID)
	require.NoError(t, err)
	assert.False(t, view.HasAccess)
	assert.True(t, view.PurchaseRequired)
	require.Len(t, view.Messages, 2)
	for _, m := range view.Messages {
		assert.True(t, m.Locked)
		assert.Equal(t, LockedPlaceholder, m.Content)
		assert.False(t, m.ContainsContactInfo)
	}

	custView, err := f.gw.GetThreadView(ctx, client, th.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"The sink is leaking", "Second floor, door 4"}, contents(custView))

	f.grant(t)
	view, err = f.gw.GetThreadView(ctx, mester, th.ID)
	require.NoError(t, err)
	assert.True(t, view.HasAccess)
	assert.Equal(t, []string{"The sink is leaking", "Second floor, door 4"}, contents(view))
}

func TestView_FirstMessageFree(t *testing.T) {
	f := setup(t, PolicyFirstMessageFree)
	th := f.open(t)
	ctx := context.Background()

	f.send(t, client, th.ID, "The sink is leaking")
	f.send(t, mester, th.ID, "I can look at it tomorrow")
	f.send(t, client, th.ID, "Great, door 4")

	// a segunda resposta já exige a compra
	_, err := f.gw.SendMessage(ctx, mester, th.ID, "See you at 9")
	assert.True(t, httperr.IsKind(err, httperr.KindAccessDenied))

	view, err := f.gw.GetThreadView(ctx, mester, th.ID)
	require.NoError(t, err)
	require.Len(t, view.Messages, 3)
	assert.False(t, view.Messages[0].Locked)
	assert.False(t, view.Messages[1].Locked)
	assert.True(t, view.Messages[2].Locked)
}

func TestSend_FirstFreeReplyOnlyOnceUnderConcurrency(t *testing.T) {
	f := setup(t, PolicyFirstMessageFree)
	th := f.open(t)
	f.send(t, client, th.ID, "The sink is leaking")

	gw := NewGateway(f.store.Messages(), f.store.Leads(), f.events, metrics.New(), logger.Discard(),
		timezone.Fixed(f.now.Add(time.Hour)), PolicyFirstMessageFree)

	const senders = 8
	var (
		wg      sync.WaitGroup
		sent    atomic.Int32
		refused atomic.Int32
	)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.SendMessage(context.Background(), mester, th.ID, "I can come tomorrow")
			switch {
			case err == nil:
				sent.Add(1)
			case httperr.IsKind(err, httperr.KindAccessDenied):
				refused.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), sent.Load())
	assert.Equal(t, int32(senders-1), refused.Load())

	msgs, err := f.store.Messages().ListThreadMessages(context.Background(), th.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestMarkRead(t *testing.T) {
	f := setup(t, PolicyStrict)
	th := f.open(t)
	f.send(t, client, th.ID, "hello")
	f.send(t, client, th.ID, "anyone?")

	n, err := f.gw.MarkRead(context.Background(), mester, th.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	view, err := f.gw.GetThreadView(context.Background(), client, th.ID)
	require.NoError(t, err)
	assert.True(t, view.Messages[0].IsRead)
}

// ======================================================
// Facades
// ======================================================

func TestAs_RoleScopedFacades(t *testing.T) {
	f := setup(t, PolicyStrict)
	ctx := context.Background()

	cust, err := f.gw.As(client)
	require.NoError(t, err)
	th, err := cust.Open(ctx, jobID, proID)
	require.NoError(t, err)
	_, err = cust.Send(ctx, th.ID, "hi")
	require.NoError(t, err)

	p, err := f.gw.As(mester)
	require.NoError(t, err)
	_, ok := p.(*MesterSide)
	require.True(t, ok)

	reopened, err := p.Open(ctx, jobID, 0)
	require.NoError(t, err)
	assert.Equal(t, th.ID, reopened.ID)

	_, err = p.Send(ctx, th.ID, "hello")
	assert.True(t, httperr.IsKind(err, httperr.KindAccessDenied))

	_, err = f.gw.As(identity.Actor{UserID: 1, Role: "admin"})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestParseViewPolicy(t *testing.T) {
	assert.Equal(t, PolicyFirstMessageFree, ParseViewPolicy(" First_Message_Free "))
	assert.Equal(t, PolicyStrict, ParseViewPolicy(""))
	assert.Equal(t, PolicyStrict, ParseViewPolicy("whatever"))
}
