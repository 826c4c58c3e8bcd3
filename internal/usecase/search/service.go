package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/kabunote/internal/domain"
	"github.com/kailas-cloud/kabunote/internal/domain/search/request"
	"github.com/kailas-cloud/kabunote/internal/domain/search/result"
)

// Service runs the engine over an owner's stored notebooks.
type Service struct {
	engine  *Engine
	corpus  CorpusReader
	results *prometheus.HistogramVec
}

// New creates a search service.
func New(engine *Engine, corpus CorpusReader) *Service {
	return &Service{engine: engine, corpus: corpus}
}

// WithResultsHistogram records result counts per operation ("search"/"related").
func (s *Service) WithResultsHistogram(h *prometheus.HistogramVec) *Service {
	s.results = h
	return s
}

// Search ranks the owner's notebooks against the request query.
func (s *Service) Search(ctx context.Context, owner string, req *request.Request) ([]result.Hit, error) {
	corpus, err := s.corpus.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}
	hits := s.engine.Search(req.Query(), corpus, req.Limit())
	s.observe("search", len(hits))
	return hits, nil
}

// Related recommends notebooks similar to the given one.
// An unknown notebook yields an empty list.
func (s *Service) Related(ctx context.Context, owner, id string, limit int) ([]result.Related, error) {
	target, err := s.corpus.Get(ctx, owner, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotebookNotFound) {
			return []result.Related{}, nil
		}
		return nil, fmt.Errorf("get notebook: %w", err)
	}
	corpus, err := s.corpus.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}
	related := s.engine.Related(target, corpus, request.RelatedLimit(limit))
	s.observe("related", len(related))
	return related, nil
}

func (s *Service) observe(op string, n int) {
	if s.results != nil {
		s.results.WithLabelValues(op).Observe(float64(n))
	}
}
