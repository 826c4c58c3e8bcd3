package analysiscache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/kabunote/internal/domain"
	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/classification"
)

var snapshotKeyPrefix = domain.KeyPrefix + "analysis:"

// Snapshot hash fields.
const (
	fieldAnalysis   = "analysis"
	fieldScore      = "analysis_score"
	fieldStrategy   = "investment_strategy"
	fieldAnalyzedAt = "last_analyzed"
	fieldEntries    = "entries"
)

// hashStore is the consumer interface for notebook snapshots (ISP).
type hashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
}

// Snapshots persists per-notebook analysis snapshots as hashes.
type Snapshots struct {
	store hashStore
}

// NewSnapshots creates a snapshot repository.
func NewSnapshots(s hashStore) *Snapshots {
	return &Snapshots{store: s}
}

// Save replaces the snapshot of a notebook.
func (r *Snapshots) Save(ctx context.Context, s *analysis.Snapshot) error {
	res, err := json.Marshal(s.Result)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	entries, err := json.Marshal(s.Entries)
	if err != nil {
		return fmt.Errorf("marshal entry analyses: %w", err)
	}
	key := snapshotKey(s.NotebookID)
	fields := map[string]string{
		fieldAnalysis:   string(res),
		fieldScore:      strconv.Itoa(s.Score),
		fieldStrategy:   string(s.Strategy),
		fieldAnalyzedAt: s.AnalyzedAt.UTC().Format(time.RFC3339),
		fieldEntries:    string(entries),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns the snapshot of a notebook, or domain.ErrNotFound if it was never analyzed.
func (r *Snapshots) Get(ctx context.Context, notebookID string) (analysis.Snapshot, error) {
	key := snapshotKey(notebookID)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return analysis.Snapshot{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return analysis.Snapshot{}, domain.ErrNotFound
	}

	s := analysis.Snapshot{
		NotebookID: notebookID,
		Strategy:   classification.Strategy(m[fieldStrategy]),
	}
	if err := json.Unmarshal([]byte(m[fieldAnalysis]), &s.Result); err != nil {
		return analysis.Snapshot{}, fmt.Errorf("parse analysis of %s: %w", notebookID, err)
	}
	if raw := m[fieldEntries]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Entries); err != nil {
			return analysis.Snapshot{}, fmt.Errorf("parse entry analyses of %s: %w", notebookID, err)
		}
	}
	if s.Score, err = strconv.Atoi(m[fieldScore]); err != nil {
		return analysis.Snapshot{}, fmt.Errorf("parse score of %s: %w", notebookID, err)
	}
	if s.AnalyzedAt, err = time.Parse(time.RFC3339, m[fieldAnalyzedAt]); err != nil {
		return analysis.Snapshot{}, fmt.Errorf("parse analyzed_at of %s: %w", notebookID, err)
	}
	return s, nil
}

// Exists reports whether a notebook has a snapshot.
func (r *Snapshots) Exists(ctx context.Context, notebookID string) (bool, error) {
	key := snapshotKey(notebookID)
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	return ok, nil
}

// Delete drops the snapshot of a notebook. Missing snapshots are not an error.
func (r *Snapshots) Delete(ctx context.Context, notebookID string) error {
	key := snapshotKey(notebookID)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func snapshotKey(notebookID string) string {
	return snapshotKeyPrefix + notebookID
}
