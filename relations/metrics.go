package relations

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("nwgraph.relations")

var (
	// fetchDuration tracks backend round trips by result.
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nwgraph_fetch_duration_seconds",
		Help:    "Relationship fetch duration in seconds by result",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	}, []string{"result"})

	// fetchShared counts callers served by another caller's in-flight fetch.
	fetchShared = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nwgraph_fetch_shared_total",
		Help: "Relationship fetches answered by an identical in-flight request",
	})
)
