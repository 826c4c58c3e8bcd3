package kabunote

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/classification"
	"github.com/kailas-cloud/kabunote/internal/domain/feature"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
	"github.com/kailas-cloud/kabunote/internal/domain/search/request"
	"github.com/kailas-cloud/kabunote/internal/domain/search/result"
	analyzeruc "github.com/kailas-cloud/kabunote/internal/usecase/analyzer"
	"github.com/kailas-cloud/kabunote/internal/usecase/classify"
	searchuc "github.com/kailas-cloud/kabunote/internal/usecase/search"
)

// Public result and record types.
type (
	AnalysisResult       = analysis.Result
	ClassificationResult = classification.Result
	FeatureVector        = feature.Vector
	Notebook             = domnb.Notebook
	NotebookAttrs        = domnb.Attrs
	Entry                = domnb.Entry
	EntryType            = domnb.EntryType
	Hit                  = result.Hit
	Related              = result.Related
)

// Engine runs analysis, classification and search over caller-supplied records.
type Engine struct {
	analyzer   *analyzeruc.Analyzer
	classifier *classify.Classifier
	search     *searchuc.Engine
}

// New creates an Engine. Pattern tables are compiled once here.
func New(opts ...Option) *Engine {
	cfg := &engineConfig{logger: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o.apply(cfg)
	}

	an := analyzeruc.New(cfg.logger)
	return &Engine{
		analyzer:   an,
		classifier: classify.New(an),
		search:     searchuc.NewEngine(an, searchuc.WithClock(cfg.now)),
	}
}

// Analyze extracts sentiment, risk, stock mentions, tags and keywords from a note.
// It never fails: broken input yields the neutral fallback result.
func (e *Engine) Analyze(content, title string) AnalysisResult {
	return e.analyzer.Analyze(content, title)
}

// Classify labels a note by investment strategy, analysis depth and content type.
func (e *Engine) Classify(content, title string) ClassificationResult {
	return e.classifier.Categorize(content, title)
}

// Search ranks the notebooks of corpus against query. A limit <= 0 uses the
// default. It never fails: a query under two characters yields an empty list.
func (e *Engine) Search(query string, corpus []Notebook, limit int) []Hit {
	return e.search.Search(query, corpus, request.SearchLimit(limit))
}

// Related recommends the notebooks of corpus most similar to target, target excluded.
func (e *Engine) Related(target Notebook, corpus []Notebook, limit int) []Related {
	return e.search.Related(target, corpus, request.RelatedLimit(limit))
}

// Features computes the comparison profile of a notebook.
func (e *Engine) Features(nb Notebook) FeatureVector {
	return e.search.Features(nb)
}

// Similarity scores two feature profiles in [0, 1].
func Similarity(a, b FeatureVector) float64 {
	return searchuc.Similarity(a, b)
}

// NewNotebook validates and creates a notebook record without entries.
func NewNotebook(id, owner string, attrs NotebookAttrs, now time.Time) (Notebook, error) {
	nb, err := domnb.New(id, owner, attrs, now)
	if err != nil {
		return Notebook{}, fmt.Errorf("kabunote: %w", err)
	}
	return nb, nil
}

// NewEntry validates and creates an entry. An empty type defaults to a memo.
func NewEntry(id string, t EntryType, title, content string, tags []string, now time.Time) (Entry, error) {
	en, err := domnb.NewEntry(id, t, title, content, tags, now)
	if err != nil {
		return Entry{}, fmt.Errorf("kabunote: %w", err)
	}
	return en, nil
}
