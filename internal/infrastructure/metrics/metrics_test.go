package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPricingMetrics(reg)

	m.RecordCalculation("B2C", "available", 0.002)
	m.RecordMultiRoom(0.01, 2, 1)
	m.RecordError("calculate", "not_found")
	m.RecordCacheLookup("price", true)
	m.RecordCacheLookup("price", false)
	m.RecordInvalidation("rate", 4)
	m.RecordConsistencyWarning()
	m.RecordCampaign("h1", "EARLY", "EUR", 33)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("B2C", "available")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MultiRoomRoomsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MultiRoomRoomsTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("calculate", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues("price", "hit")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CacheInvalidationsTotal.WithLabelValues("rate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConsistencyWarningsTotal))
	assert.Equal(t, 33.0, testutil.ToFloat64(m.CampaignDiscountTotal.WithLabelValues("h1", "EUR")))

	count, err := testutil.GatherAndCount(reg, "pricing_calculation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPricingMetrics_NilSafe(t *testing.T) {
	var m *PricingMetrics
	assert.NotPanics(t, func() {
		m.RecordCalculation("B2B", "error", 0)
		m.RecordMultiRoom(0, 1, 0)
		m.RecordError("calculate", "internal")
		m.RecordCacheLookup("campaign", false)
		m.RecordInvalidation("manual", 1)
		m.RecordConsistencyWarning()
		m.RecordCampaign("h1", "X", "EUR", 1)
	})
}
