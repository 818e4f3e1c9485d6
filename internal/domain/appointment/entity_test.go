package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

func confirmed() *models.Appointment {
	return &models.Appointment{
		ID:             3,
		ProfessionalID: 7,
		CustomerID:     9,
		ScheduledStart: at(monday, 10, 0),
		ScheduledEnd:   at(monday, 11, 0),
		Status:         string(StatusConfirmed),
	}
}

func TestCancel_RecordsWhoCancelled(t *testing.T) {
	now := at(monday, 8, 0)

	byCustomer := confirmed()
	require.NoError(t, Cancel(byCustomer, identity.RoleCustomer, now))
	assert.Equal(t, string(StatusCancelledByCustomer), byCustomer.Status)
	assert.Equal(t, now, *byCustomer.CancelledAt)

	byMester := confirmed()
	require.NoError(t, Cancel(byMester, identity.RoleMester, now))
	assert.Equal(t, string(StatusCancelledByMester), byMester.Status)

	err := Cancel(byMester, identity.RoleMester, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestReschedule_KeepsDuration(t *testing.T) {
	ap := confirmed()

	require.NoError(t, Reschedule(ap, at(monday, 14, 0)))

	assert.Equal(t, at(monday, 15, 0), ap.ScheduledEnd)
	assert.Equal(t, string(StatusRescheduled), ap.Status)
	assert.True(t, IsActive(Status(ap.Status)))
}

func TestCompleteAndNoShow(t *testing.T) {
	ap := confirmed()
	err := MarkNoShow(ap, at(monday, 9, 0))
	assert.True(t, httperr.IsBusiness(err, "appointment_not_started"))

	require.NoError(t, MarkNoShow(ap, at(monday, 10, 30)))
	assert.Equal(t, string(StatusNoShow), ap.Status)

	err = Complete(ap, at(monday, 12, 0))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	done := confirmed()
	require.NoError(t, Complete(done, at(monday, 12, 0)))
	assert.Equal(t, string(StatusCompleted), done.Status)
	assert.NotNil(t, done.CompletedAt)
}

func TestParticipantRole(t *testing.T) {
	ap := confirmed()

	role, ok := ParticipantRole(ap, 7)
	assert.True(t, ok)
	assert.Equal(t, identity.RoleMester, role)

	_, ok = ParticipantRole(ap, 99)
	assert.False(t, ok)
}
