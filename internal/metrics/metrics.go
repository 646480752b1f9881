package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TreeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bstree_operations_total",
	Help: "Number of tree operations by kind and outcome",
}, []string{"op", "outcome"})

var TreeEntries = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "bstree_entries",
	Help: "Number of entries currently held by the tree",
})

var SnapshotsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bstree_snapshots_saved_total",
	Help: "Number of snapshot save attempts",
}, []string{"status"})

var WebSocketSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "bstree_ws_sessions",
	Help: "Number of open websocket command sessions",
})
