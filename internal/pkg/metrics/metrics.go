package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// ImportsTotal counts per-vehicle import outcomes.
	ImportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinsync_imports_total",
			Help: "Total number of vehicle import attempts by result.",
		},
		[]string{"result"}, // result: created/skipped/failed
	)

	// BatchRunsTotal counts batch executions by trigger source.
	BatchRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vinsync_batch_runs_total",
			Help: "Total number of batch runs by trigger.",
		},
		[]string{"trigger"}, // trigger: schedule/manual
	)

	// ImagesStoredTotal counts images downloaded into the media store.
	ImagesStoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vinsync_images_stored_total",
			Help: "Total number of vehicle images downloaded and stored.",
		},
	)

	// OffsetResetsTotal counts cursor resets caused by empty upstream pages.
	OffsetResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vinsync_offset_resets_total",
			Help: "Total number of cursor resets triggered by an empty page.",
		},
	)
)

// Registry is the process-wide metrics registry exposed at /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(ImportsTotal)
	Registry.MustRegister(BatchRunsTotal)
	Registry.MustRegister(ImagesStoredTotal)
	Registry.MustRegister(OffsetResetsTotal)
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
