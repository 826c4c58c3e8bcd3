package classify

import "github.com/kailas-cloud/kabunote/internal/domain/analysis"

// Analyzer produces the analysis the classifier derives its labels from.
type Analyzer interface {
	Analyze(content, title string) analysis.Result
}
