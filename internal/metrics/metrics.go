package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SlotReservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_slot_reservations_total",
			Help: "Slot reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	SlotPurchases = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ad_slot_purchases_total",
			Help: "Total reserved slots converted to processing",
		},
	)

	ImpressionsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_impressions_served_total",
			Help: "Ad cards resolved for public pages",
		},
		[]string{"page", "sponsored"},
	)

	ClicksReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_clicks_received_total",
			Help: "Total number of click events received",
		},
		[]string{"ad_space_id"},
	)

	EventsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ad_events_processed_total",
			Help: "Total number of ad events persisted by the analytics consumer",
		},
	)

	ResponseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)
)

func init() {
	prometheus.MustRegister(SlotReservations)
	prometheus.MustRegister(SlotPurchases)
	prometheus.MustRegister(ImpressionsServed)
	prometheus.MustRegister(ClicksReceived)
	prometheus.MustRegister(EventsProcessed)
	prometheus.MustRegister(ResponseTime)
}
