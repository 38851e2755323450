package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PricingMetrics holds every metric the pricing engine exports.
type PricingMetrics struct {
	// Calculations by channel and outcome (priced / unavailable / restricted / error)
	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec

	// Errors by kind (not_found / bad_request / internal)
	ErrorsTotal *prometheus.CounterVec

	// Cache
	CacheRequestsTotal      *prometheus.CounterVec
	CacheInvalidationsTotal *prometheus.CounterVec

	// Multi-room batches
	MultiRoomRoomsTotal      *prometheus.CounterVec
	ConsistencyWarningsTotal prometheus.Counter

	// Campaigns
	CampaignsAppliedTotal *prometheus.CounterVec
	CampaignDiscountTotal *prometheus.CounterVec
}

// NewPricingMetrics registers the metrics on reg.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	factory := promauto.With(reg)
	return &PricingMetrics{
		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_calculations_total",
				Help: "Price calculations by sales channel and outcome",
			},
			[]string{"channel", "outcome"},
		),

		CalculationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricing_calculation_duration_seconds",
				Help:    "Duration of price calculations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms, 2ms, 4ms...
			},
			[]string{"operation"},
		),

		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_errors_total",
				Help: "Pricing errors by kind",
			},
			[]string{"operation", "kind"},
		),

		CacheRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_cache_requests_total",
				Help: "Price cache lookups by category and result",
			},
			[]string{"category", "result"},
		),

		CacheInvalidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_cache_invalidations_total",
				Help: "Cache entries removed by invalidation reason",
			},
			[]string{"reason"},
		),

		MultiRoomRoomsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_multiroom_rooms_total",
				Help: "Rooms priced inside multi-room requests by status",
			},
			[]string{"status"},
		),

		ConsistencyWarningsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pricing_consistency_warnings_total",
				Help: "Room results whose final total drifted from original minus discount",
			},
		),

		CampaignsAppliedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_campaigns_applied_total",
				Help: "Campaign applications by campaign code",
			},
			[]string{"hotel_id", "campaign"},
		),

		CampaignDiscountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_campaign_discount_amount_total",
				Help: "Sum of campaign discounts granted",
			},
			[]string{"hotel_id", "currency"},
		),
	}
}

func (m *PricingMetrics) RecordCalculation(channel, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.CalculationsTotal.WithLabelValues(channel, outcome).Inc()
	m.CalculationDuration.WithLabelValues("single_room").Observe(seconds)
}

func (m *PricingMetrics) RecordMultiRoom(seconds float64, succeeded, failed int) {
	if m == nil {
		return
	}
	m.CalculationDuration.WithLabelValues("multi_room").Observe(seconds)
	m.MultiRoomRoomsTotal.WithLabelValues("ok").Add(float64(succeeded))
	m.MultiRoomRoomsTotal.WithLabelValues("error").Add(float64(failed))
}

func (m *PricingMetrics) RecordError(operation, kind string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(operation, kind).Inc()
}

func (m *PricingMetrics) RecordCacheLookup(category string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequestsTotal.WithLabelValues(category, result).Inc()
}

func (m *PricingMetrics) RecordInvalidation(reason string, removed int) {
	if m == nil {
		return
	}
	m.CacheInvalidationsTotal.WithLabelValues(reason).Add(float64(removed))
}

func (m *PricingMetrics) RecordConsistencyWarning() {
	if m == nil {
		return
	}
	m.ConsistencyWarningsTotal.Inc()
}

func (m *PricingMetrics) RecordCampaign(hotelID, campaign, currency string, discount float64) {
	if m == nil {
		return
	}
	m.CampaignsAppliedTotal.WithLabelValues(hotelID, campaign).Inc()
	m.CampaignDiscountTotal.WithLabelValues(hotelID, currency).Add(discount)
}
