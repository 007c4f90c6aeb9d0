package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// sessionsActive tracks live graph sessions across all servers in the process.
var sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "nwgraph_sessions_active",
	Help: "Graph sessions currently held in memory",
})
