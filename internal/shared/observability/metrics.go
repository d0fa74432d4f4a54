package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layoutlint_runs_total",
		Help: "Total number of completed lint runs.",
	})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "layoutlint_run_seconds",
		Help:    "Wall time of a full lint run.",
		Buckets: prometheus.DefBuckets,
	})

	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "layoutlint_phase_seconds",
		Help:    "Time spent in each phase of a lint run.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	FilesScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "layoutlint_files_scanned",
		Help: "Number of source files visited by the last run.",
	})

	GraphTargets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "layoutlint_import_graph_targets",
		Help: "Number of imported files in the last import graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "layoutlint_import_graph_edges",
		Help: "Number of importer edges in the last import graph.",
	})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "layoutlint_diagnostics_total",
		Help: "Total number of diagnostics emitted, by rule and severity.",
	}, []string{"rule", "severity"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layoutlint_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatchRerunsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layoutlint_watch_reruns_skipped_total",
		Help: "Change batches folded into an already pending re-run.",
	})
)
