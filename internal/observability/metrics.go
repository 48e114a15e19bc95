package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeReleased = "released"
	OutcomeNothing  = "nothing_to_release"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeCreated  = "created"

	PaymentKindPayment    = "payment"
	PaymentKindRefund     = "refund"
	PaymentKindSettlement = "settlement"
	PaymentKindDeposit    = "deposit"
)

// Metrics holds the front desk counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	releases   *prometheus.CounterVec
	quickRents *prometheus.CounterVec
	payments   *prometheus.CounterVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "room_releases_total",
			Help:      "Room release attempts by outcome.",
		}, []string{"outcome"}),
		quickRents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "quick_rents_total",
			Help:      "Walk-in bookings by outcome.",
		}, []string{"outcome"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "payments_total",
			Help:      "Ledger entries written by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.releases, m.quickRents, m.payments)
	}
	return m
}

func (m *Metrics) Release(outcome string) {
	if m == nil {
		return
	}
	m.releases.WithLabelValues(outcome).Inc()
}

func (m *Metrics) QuickRent(outcome string) {
	if m == nil {
		return
	}
	m.quickRents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Payment(kind string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(kind).Inc()
}
