package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mester"

// Metrics é opcional em todos os use cases: um *Metrics nil não faz nada.
type Metrics struct {
	registry *prometheus.Registry

	slotQueries         prometheus.Counter
	proposalTransitions *prometheus.CounterVec
	bookingConflicts    prometheus.Counter
	messagesRedacted    prometheus.Counter
	sendsRefused        prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		slotQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_queries_total",
			Help:      "Availability queries served.",
		}),
		proposalTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposal_transitions_total",
			Help:      "Proposal transitions by name and result.",
		}, []string{"transition", "result"}),
		bookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Bookings refused at write time because the slot was taken.",
		}),
		messagesRedacted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_redacted_total",
			Help:      "Messages stored with contact information masked.",
		}),
		sendsRefused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sends_refused_total",
			Help:      "Sends refused because the lead was not purchased.",
		}),
	}

	reg.MustRegister(
		m.slotQueries,
		m.proposalTransitions,
		m.bookingConflicts,
		m.messagesRedacted,
		m.sendsRefused,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) SlotQuery() {
	if m == nil {
		return
	}
	m.slotQueries.Inc()
}

// Transition registra result "ok" ou o código do erro de negócio.
func (m *Metrics) Transition(name, result string) {
	if m == nil {
		return
	}
	m.proposalTransitions.WithLabelValues(name, result).Inc()
}

func (m *Metrics) BookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflicts.Inc()
}

func (m *Metrics) MessageRedacted() {
	if m == nil {
		return
	}
	m.messagesRedacted.Inc()
}

func (m *Metrics) SendRefused() {
	if m == nil {
		return
	}
	m.sendsRefused.Inc()
}
