package events

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "extractd",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of events published, by type",
		},
		[]string{"type"},
	)

	subscribersLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "extractd",
			Subsystem: "events",
			Name:      "subscribers",
			Help:      "Current number of live event subscribers",
		},
	)

	subscribersEvictedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "extractd",
			Subsystem: "events",
			Name:      "subscribers_evicted_total",
			Help:      "Subscribers evicted because their mailbox was full at publish time",
		},
	)
)

func init() {
	prometheus.MustRegister(eventsPublishedTotal, subscribersLive, subscribersEvictedTotal)
}
