package lead

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/mester-scheduler/internal/logger"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

func TestGrantAccess_IdempotentAndVisible(t *testing.T) {
	repo := memory.NewStore().Leads()
	rec := &events.Recorder{}
	grant := NewGrantAccess(repo, rec, logger.Discard(), timezone.Fixed(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)))
	has := NewHasAccess(repo)
	ctx := context.Background()

	ok, err := has.Execute(ctx, identity.Mester(7), 11)
	require.NoError(t, err)
	assert.False(t, ok)

	conf := payment.Confirmation{ProfessionalID: 7, JobID: 11, Provider: "Stripe", Reference: "pi_1"}

	created, err := grant.Execute(ctx, conf)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = grant.Execute(ctx, conf)
	require.NoError(t, err)
	assert.False(t, created)

	ok, err = has.Execute(ctx, identity.Mester(7), 11)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []string{events.LeadAccessGranted}, rec.Types())
	assert.Equal(t, "stripe", rec.Events()[0].Payload["provider"])
}

func TestGrantAccess_InvalidConfirmation(t *testing.T) {
	grant := NewGrantAccess(memory.NewStore().Leads(), events.Discard{}, logger.Discard(), nil)

	_, err := grant.Execute(context.Background(), payment.Confirmation{ProfessionalID: 7})
	assert.True(t, httperr.IsBusiness(err, "invalid_job"))
}

func TestHasAccess_CustomerForbidden(t *testing.T) {
	_, err := NewHasAccess(memory.NewStore().Leads()).Execute(context.Background(), identity.Customer(9), 11)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}
