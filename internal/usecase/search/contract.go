package search

import (
	"context"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

// Analyzer analyzes a notebook's full text for feature extraction.
type Analyzer interface {
	Analyze(content, title string) analysis.Result
}

// CorpusReader loads an owner's notebooks.
type CorpusReader interface {
	Get(ctx context.Context, owner, id string) (notebook.Notebook, error)
	List(ctx context.Context, owner string) ([]notebook.Notebook, error)
}
