package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCount(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.Release(OutcomeReleased)
	m.Release(OutcomeReleased)
	m.Payment(PaymentKindRefund)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.releases.WithLabelValues(OutcomeReleased)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues(PaymentKindRefund)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Release(OutcomeFailed)
		m.QuickRent(OutcomeCreated)
		m.Payment(PaymentKindDeposit)
	})
}
