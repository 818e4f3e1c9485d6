package proposal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/mester-scheduler/internal/logger"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

const (
	proID uint = 7
	jobID uint = 11
)

var (
	start  = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	mester = identity.Mester(proID)
	client = identity.Customer(9)
)

type fixture struct {
	store  *memory.Store
	deps   Deps
	events *events.Recorder

	mu  sync.Mutex
	now time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{store: memory.NewStore(), events: &events.Recorder{}, now: start}
	f.deps = Deps{
		Proposals: f.store.Proposals(),
		Schedules: f.store.Appointments(),
		Threads:   f.store.Messages(),
		Leads:     f.store.Leads(),
		Events:    f.events,
		Metrics:   metrics.New(),
		Log:       logger.Discard(),
		Clock:     f.clock,
	}

	require.NoError(t, f.store.Appointments().SaveWorkingHours(context.Background(), &models.WorkingHoursConfig{
		ProfessionalID:         proID,
		BufferMinutes:          15,
		MaxAdvanceDays:         30,
		DefaultDurationMinutes: 60,
		AllowOnlineBooking:     true,
		Timezone:               "UTC",
	}))
	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fixture) thread(t *testing.T, customerID, job uint) *models.Thread {
	t.Helper()
	th, err := f.store.Messages().GetOrCreateThread(context.Background(), &models.Thread{
		JobID:          job,
		ProfessionalID: proID,
		CustomerID:     customerID,
	})
	require.NoError(t, err)
	return th
}

func (f *fixture) grant(t *testing.T, job uint) {
	t.Helper()
	_, err := f.store.Leads().GrantAccess(context.Background(), &models.LeadAccessRecord{
		ProfessionalID: proID, JobID: job, Granted: true,
	})
	require.NoError(t, err)
}

func (f *fixture) propose(t *testing.T, author identity.Actor, th *models.Thread, at time.Time) *models.AppointmentProposal {
	t.Helper()
	p, err := NewCreateProposal(f.deps).Execute(context.Background(), author, CreateProposalInput{
		ThreadID:      th.ID,
		ProposedStart: at,
		Price:         decimal.NewFromInt(30000),
		Location:      "Budapest",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) appointments(t *testing.T) []models.Appointment {
	t.Helper()
	aps, err := f.store.Appointments().ListAppointmentsForPeriod(context.Background(), proID, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	return aps
}

// ======================================================
// Create
// ======================================================

func TestCreate_MesterNeedsLeadAccess(t *testing.T) {
	f := setup(t)
	th := f.thread(t, 9, jobID)

	_, err := NewCreateProposal(f.deps).Execute(context.Background(), mester, CreateProposalInput{
		ThreadID:      th.ID,
		ProposedStart: start.Add(48 * time.Hour),
	})
	assert.True(t, httperr.IsKind(err, httperr.KindAccessDenied))

	f.grant(t, jobID)
	p := f.propose(t, mester, th, start.Add(48*time.Hour))

	assert.Equal(t, "proposed", p.Status)
	assert.Equal(t, 60, p.DurationMinutes)
	assert.Equal(t, []string{events.ProposalCreated}, f.events.Types())
}

func TestCreate_CustomerIsNotGated(t *testing.T) {
	f := setup(t)
	th := f.thread(t, 9, jobID)

	p := f.propose(t, client, th, start.Add(48*time.Hour))
	assert.Equal(t, string(identity.RoleCustomer), p.AuthorRole)

	_, err := NewCreateProposal(f.deps).Execute(context.Background(), identity.Customer(55), CreateProposalInput{
		ThreadID:      th.ID,
		ProposedStart: start.Add(48 * time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "thread_not_found"))
}

// ======================================================
// Accept
// ======================================================

func TestAccept_CreatesExactlyOneAppointment(t *testing.T) {
	f := setup(t)
	f.grant(t, jobID)
	th := f.thread(t, 9, jobID)
	p := f.propose(t, mester, th, start.Add(48*time.Hour))
	ctx := context.Background()

	res, err := NewAcceptProposal(f.deps).Execute(ctx, client, p.ID, "deal")
	require.NoError(t, err)

	assert.Equal(t, "accepted", res.Proposal.Status)
	require.NotNil(t, res.Proposal.AppointmentID)
	assert.Equal(t, res.Appointment.ID, *res.Proposal.AppointmentID)
	assert.Equal(t, "deal", res.Proposal.ResponseMessage)
	assert.Equal(t, p.ProposedStart, res.Appointment.ScheduledStart)

	_, err = NewAcceptProposal(f.deps).Execute(ctx, client, p.ID, "again")
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	assert.Len(t, f.appointments(t), 1)
	assert.Contains(t, f.events.Types(), events.ProposalAccepted)
	assert.Contains(t, f.events.Types(), events.AppointmentCreated)
}

func TestAccept_AuthorCannotAccept(t *testing.T) {
	f := setup(t)
	f.grant(t, jobID)
	th := f.thread(t, 9, jobID)
	p := f.propose(t, mester, th, start.Add(48*time.Hour))

	_, err := NewAcceptProposal(f.deps).Execute(context.Background(), mester, p.ID, "")
	assert.True(t, httperr.IsBusiness(err, "not_counterparty"))
}

func TestAccept_MesterNeedsLeadForCustomerProposal(t *testing.T) {
	f := setup(t)
	th := f.thread(t, 9, jobID)
	p := f.propose(t, client, th, start.Add(48*time.Hour))

	_, err := NewAcceptProposal(f.deps).Execute(context.Background(), mester, p.ID, "")
	assert.True(t, httperr.IsKind(err, httperr.KindAccessDenied))

	f.grant(t, jobID)
	res, err := NewAcceptProposal(f.deps).Execute(context.Background(), mester, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "accepted", res.Proposal.Status)
}

func TestAccept_PastDatedProposalBecomesExpired(t *testing.T) {
	f := setup(t)
	f.grant(t, jobID)
	th := f.thread(t, 9, jobID)
	p := f.propose(t, mester, th, start.Add(time.Hour))
	ctx := context.Background()

	f.advance(2 * time.Hour)

	_, err := NewAcceptProposal(f.deps).Execute(ctx, client, p.ID, "")
	assert.True(t, httperr.IsBusiness(err, "proposal_expired"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	stored, err := f.store.Proposals().GetProposal(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired", stored.Status)
	assert.Nil(t, stored.AppointmentID)
	assert.Empty(t, f.appointments(t))
	assert.Contains(t, f.events.Types(), events.ProposalExpired)
}

func TestAccept_ConflictLeavesProposalOpen(t *testing.T) {
	f := setup(t)
	f.grant(t, jobID)
	f.grant(t, 12)
	ctx := context.Background()

	first := f.propose(t, mester, f.thread(t, 9, jobID), start.Add(48*time.Hour))
	second := f.propose(t, mester, f.thread(t, 10, 12), start.Add(48*time.Hour+70*time.Minute))

	_, err := NewAcceptProposal(f.deps).Execute(ctx, client, first.ID, "")
	require.NoError(t, err)

	_, err = NewAcceptProposal(f.deps).Execute(ctx, identity.Customer(10), second.ID, "")
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	stored, err := f.store.Proposals().GetProposal(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "proposed", stored.Status)
	assert.Len(t, f.appointments(t), 1)
}

func TestAccept_ConcurrentOverlappingOnlyOneWins(t *testing.T) {
	f := setup(t)
	f.grant(t, jobID)
	f.grant(t, 12)

	a := f.propose(t, mester, f.thread(t, 9, jobID), start.Add(48*time.Hour))
	b := f.propose(t, mester, f.thread(t, 10, 12), start.Add(48*time.Hour+30*time.Minute))

	type call struct {
		actor identity.Actor
		id    uint
	}
	calls := []call{{identity.Customer(9), a.ID}, {identity.Customer(10), b.ID}}

	errs := make([]error, len(calls))
	var wg sync.WaitGroup
	for i, c := range calls {
		wg.Add(1)
		go func(i int, c call) {
			defer wg.Done()
			_, errs[i] = NewAcceptProposal(f.deps).Execute(context.Background(), c.actor, c.id, "")
		}(i, c)
	}
	wg.Wait()

	ok, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsKind(err, httperr.KindConflict):
			conflicts++
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, f.appointments(t), 1)
}

// ======================================================
// Reject / Cancel
// ======================================================

func TestReject(t *testing.T) {
	f := setup(t)
	f.grant(t, jobID)
	p := f.propose(t, mester, f.thread(t, 9, jobID), start.Add(48*time.Hour))
	ctx := context.Background()

	_, err := NewRejectProposal(f.deps).Execute(ctx, mester, p.ID, "")
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	got, err := NewRejectProposal(f.deps).Execute(ctx, client, p.ID, "too late for me")
	require.NoError(t, err)
	assert.Equal(t, "rejected", got.Status)

	_, err = NewAcceptProposal(f.deps).Execute(ctx, client, p.ID, "")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestCancel(t *testing.T) {
	f := setup(t)
	th := f.thread(t, 9, jobID)
	p := f.propose(t, client, th, start.Add(48*time.Hour))
	ctx := context.Background()

	_, err := NewCancelProposal(f.deps).Execute(ctx, mester, p.ID)
	assert.True(t, httperr.IsBusiness(err, "not_author"))

	_, err = NewCancelProposal(f.deps).Execute(ctx, identity.Customer(55), p.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	got, err := NewCancelProposal(f.deps).Execute(ctx, client, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)

	_, err = NewCancelProposal(f.deps).Execute(ctx, client, p.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

// ======================================================
// Read-time expiry / sweep
// ======================================================

func TestListAndSweep_ExpireLazily(t *testing.T) {
	f := setup(t)
	th := f.thread(t, 9, jobID)
	soon := f.propose(t, client, th, start.Add(time.Hour))
	later := f.propose(t, client, th, start.Add(72*time.Hour))
	ctx := context.Background()

	f.advance(90 * time.Minute)

	list, err := NewListThreadProposals(f.deps).Execute(ctx, mester, th.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "expired", list[0].Status)
	assert.Equal(t, "proposed", list[1].Status)

	got, err := NewGetProposal(f.deps).Execute(ctx, client, soon.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusExpired), got.Status)

	// a leitura não grava nada
	raw, err := f.store.Proposals().GetProposal(ctx, soon.ID)
	require.NoError(t, err)
	assert.Equal(t, "proposed", raw.Status)

	n, err := NewExpireStale(f.deps).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	raw, err = f.store.Proposals().GetProposal(ctx, soon.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired", raw.Status)

	raw, err = f.store.Proposals().GetProposal(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, "proposed", raw.Status)
}
