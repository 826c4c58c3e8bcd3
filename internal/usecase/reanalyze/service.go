// Package reanalyze refreshes the stored analysis snapshots of notebooks in bulk.
package reanalyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/domain"
	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	dombatch "github.com/kailas-cloud/kabunote/internal/domain/batch"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
	"github.com/kailas-cloud/kabunote/internal/usecase/classify"
	"github.com/kailas-cloud/kabunote/internal/usecase/search"
)

// DefaultLimit is the per-owner notebook cap used by the CLI.
const DefaultLimit = 100

// Options selects the notebooks of a run.
// NotebookID wins over Owner; with neither set every owner is processed.
type Options struct {
	Owner      string
	NotebookID string
	Force      bool
	DryRun     bool
	Limit      int // per owner; <= 0 means unlimited
}

// Report summarizes a run.
type Report struct {
	DryRun       bool
	Processed    int // notebooks analyzed (or, in a dry run, that would be)
	Skipped      int
	Failed       int
	Entries      int
	FailedOwners []string
	Items        []dombatch.Result
}

// Service runs batch re-analysis.
type Service struct {
	notebooks NotebookSource
	analyzer  Analyzer
	snapshots SnapshotStore
	logger    *zap.Logger
	now       func() time.Time
	outcomes  *prometheus.CounterVec
}

// New creates a re-analysis service.
func New(notebooks NotebookSource, analyzer Analyzer, snapshots SnapshotStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		notebooks: notebooks,
		analyzer:  analyzer,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithOutcomeCounter counts notebooks by outcome ("processed"/"skipped"/"failed").
func (s *Service) WithOutcomeCounter(cv *prometheus.CounterVec) *Service {
	s.outcomes = cv
	return s
}

// Run analyzes the selected notebooks. Per-notebook failures are recorded in
// the report and never abort the run. An unknown NotebookID is an error.
func (s *Service) Run(ctx context.Context, opts Options) (Report, error) {
	rep := Report{DryRun: opts.DryRun}

	switch {
	case opts.NotebookID != "":
		nb, err := s.notebooks.Lookup(ctx, opts.NotebookID)
		if err == nil && opts.Owner != "" && nb.Owner() != opts.Owner {
			err = domain.ErrNotebookNotFound
		}
		if err != nil {
			return rep, fmt.Errorf("notebook %q: %w", opts.NotebookID, err)
		}
		s.process(ctx, &nb, opts, &rep)

	case opts.Owner != "":
		if err := s.runOwner(ctx, opts.Owner, opts, &rep); err != nil {
			return rep, err
		}

	default:
		owners, err := s.notebooks.Owners(ctx)
		if err != nil {
			return rep, fmt.Errorf("list owners: %w", err)
		}
		for _, owner := range owners {
			if err := ctx.Err(); err != nil {
				return rep, fmt.Errorf("re-analysis interrupted: %w", err)
			}
			if err := s.runOwner(ctx, owner, opts, &rep); err != nil {
				s.logger.Error("Owner re-analysis failed", zap.String("owner", owner), zap.Error(err))
				rep.FailedOwners = append(rep.FailedOwners, owner)
			}
		}
	}

	return rep, nil
}

func (s *Service) runOwner(ctx context.Context, owner string, opts Options, rep *Report) error {
	nbs, err := s.notebooks.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("list notebooks of %q: %w", owner, err)
	}
	if opts.Limit > 0 && len(nbs) > opts.Limit {
		nbs = nbs[:opts.Limit]
	}
	for i := range nbs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("re-analysis interrupted: %w", err)
		}
		s.process(ctx, &nbs[i], opts, rep)
	}
	return nil
}

func (s *Service) process(ctx context.Context, nb *domnb.Notebook, opts Options, rep *Report) {
	item := s.processOne(ctx, nb, opts)
	rep.Items = append(rep.Items, item)

	switch item.Status() {
	case dombatch.StatusOK, dombatch.StatusPending:
		rep.Processed++
		rep.Entries += item.Entries()
		s.count("processed")
	case dombatch.StatusSkipped:
		rep.Skipped++
		s.count("skipped")
	case dombatch.StatusError:
		rep.Failed++
		s.count("failed")
		s.logger.Warn("Notebook re-analysis failed",
			zap.String("notebook_id", nb.ID()), zap.Error(item.Err()))
	}
}

func (s *Service) processOne(ctx context.Context, nb *domnb.Notebook, opts Options) dombatch.Result {
	if !opts.Force {
		analyzed, err := s.snapshots.Exists(ctx, nb.ID())
		if err != nil {
			return dombatch.NewError(nb.ID(), nb.Title(), err)
		}
		if analyzed {
			return dombatch.NewSkipped(nb.ID(), nb.Title())
		}
	}
	if opts.DryRun {
		return dombatch.NewPending(nb.ID(), nb.Title(), nb.EntryCount())
	}

	snap := s.Analyze(ctx, nb)
	if err := s.snapshots.Save(ctx, &snap); err != nil {
		return dombatch.NewError(nb.ID(), nb.Title(), err)
	}
	return dombatch.NewOK(nb.ID(), nb.Title(), len(snap.Entries))
}

// Analyze builds the snapshot of a notebook without storing it.
func (s *Service) Analyze(ctx context.Context, nb *domnb.Notebook) analysis.Snapshot {
	res := s.analyzer.Analyze(ctx, search.FullText(*nb), nb.Title())

	entries := make([]analysis.EntrySnapshot, 0, nb.EntryCount())
	for _, e := range nb.Entries() {
		er := s.analyzer.Analyze(ctx, e.Content(), e.Title())
		entries = append(entries, analysis.EntrySnapshot{
			EntryID:     e.ID(),
			Sentiment:   er.Sentiment,
			ContentType: classify.EntryContentType(er.SuggestedTags, e.Content()),
			Score:       er.AnalysisScore,
		})
	}

	return analysis.Snapshot{
		NotebookID: nb.ID(),
		Result:     res,
		Score:      res.AnalysisScore,
		Strategy:   classify.Strategy(res.SuggestedTags, ""),
		AnalyzedAt: s.now().UTC(),
		Entries:    entries,
	}
}

func (s *Service) count(outcome string) {
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(outcome).Inc()
	}
}

// IsNotFound reports whether a Run error means the requested notebook does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotebookNotFound)
}
