package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.SlotQuery()
		m.Transition("accept", "ok")
		m.BookingConflict()
		m.MessageRedacted()
		m.SendRefused()
	})
}

func TestCounters(t *testing.T) {
	m := New()

	m.SlotQuery()
	m.SlotQuery()
	m.Transition("accept", "ok")
	m.Transition("accept", "slot_unavailable")
	m.Transition("accept", "ok")
	m.BookingConflict()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.slotQueries))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.proposalTransitions.WithLabelValues("accept", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.proposalTransitions.WithLabelValues("accept", "slot_unavailable")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingConflicts))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.sendsRefused))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.MessageRedacted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mester_messages_redacted_total 1")
}
