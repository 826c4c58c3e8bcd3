package metrics

import "github.com/prometheus/client_golang/prometheus"

// Analysis Prometheus metrics.
var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kabunote",
			Name:      "analyses_total",
			Help:      "Total number of content analyses by resulting sentiment",
		},
		[]string{"sentiment"},
	)

	AnalysisCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kabunote",
			Name:      "analysis_cache_total",
			Help:      "Analysis cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kabunote",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"kind"}, // "search" / "related"
	)

	ReanalyzeNotebooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kabunote",
			Name:      "reanalyze_notebooks_total",
			Help:      "Notebooks handled by batch re-analysis",
		},
		[]string{"outcome"}, // "processed" / "skipped" / "failed"
	)
)

var analysisMetricsRegistered bool

// RegisterAnalysisMetrics registers Prometheus analysis metrics. Must be called once from main.
func RegisterAnalysisMetrics() {
	if analysisMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(AnalysisCacheTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(ReanalyzeNotebooksTotal)
	analysisMetricsRegistered = true
}
