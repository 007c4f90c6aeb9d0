package expand

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("nwgraph.expand")

var (
	// tapsTotal counts taps by outcome: expanded, collapsed, ignored, failed, superseded.
	tapsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nwgraph_expansions_total",
		Help: "Node taps by outcome",
	}, []string{"result"})

	// collapsesTotal counts synchronous collapses.
	collapsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nwgraph_collapses_total",
		Help: "Expanded nodes collapsed",
	})

	// inFlight tracks neighborhood fetches that have not completed.
	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nwgraph_expansions_in_flight",
		Help: "Neighborhood fetches currently in flight",
	})
)
