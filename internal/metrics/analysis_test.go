package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterAnalysisMetrics_Idempotent(t *testing.T) {
	RegisterAnalysisMetrics()
	RegisterAnalysisMetrics()

	AnalysesTotal.WithLabelValues("positive").Inc()
	if got := testutil.ToFloat64(AnalysesTotal.WithLabelValues("positive")); got < 1 {
		t.Errorf("expected analyses_total >= 1, got %f", got)
	}
}

func TestSearchResults_Observes(t *testing.T) {
	SearchResults.WithLabelValues("related").Observe(3)
	if n := testutil.CollectAndCount(SearchResults); n == 0 {
		t.Error("expected search_results to have series")
	}
}
