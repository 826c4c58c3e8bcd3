package reanalyze

import (
	"context"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

// NotebookSource enumerates the notebooks to analyze.
type NotebookSource interface {
	Lookup(ctx context.Context, id string) (domnb.Notebook, error)
	List(ctx context.Context, owner string) ([]domnb.Notebook, error)
	Owners(ctx context.Context) ([]string, error)
}

// Analyzer analyzes free text.
type Analyzer interface {
	Analyze(ctx context.Context, content, title string) analysis.Result
}

// SnapshotStore persists per-notebook analyses.
type SnapshotStore interface {
	Exists(ctx context.Context, notebookID string) (bool, error)
	Save(ctx context.Context, s *analysis.Snapshot) error
}
