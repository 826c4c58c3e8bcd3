package notebook

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/kabunote/internal/domain"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

// Dashboard window and tag ranking size.
const (
	ActivityWindow = 30 * 24 * time.Hour
	PopularTagsMax = 10
)

// EntryInput carries the caller-supplied fields of a new entry.
type EntryInput struct {
	Type    domnb.EntryType
	Title   string
	Content string
	Tags    []string
}

// TagCount is the number of notebooks carrying a tag.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarizes an owner's notebooks for the dashboard.
type Stats struct {
	TotalNotebooks  int        `json:"total_notebooks"`
	ActiveNotebooks int        `json:"active_notebooks"`
	TotalEntries    int        `json:"total_entries"`
	MonthlyEntries  int        `json:"monthly_entries"`
	PopularTags     []TagCount `json:"popular_tags"`
}

// Service handles notebook CRUD, entries and dashboard statistics.
type Service struct {
	repo      Repository
	snapshots SnapshotRemover
	now       func() time.Time
	newID     func() string
}

// New creates a notebook service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// WithSnapshots removes stored analyses together with their notebook.
func (s *Service) WithSnapshots(r SnapshotRemover) *Service {
	s.snapshots = r
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates and stores a new notebook.
func (s *Service) Create(ctx context.Context, owner string, attrs domnb.Attrs) (domnb.Notebook, error) {
	nb, err := domnb.New(s.newID(), owner, attrs, s.now().UTC())
	if err != nil {
		return domnb.Notebook{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if err := s.repo.Save(ctx, &nb); err != nil {
		return domnb.Notebook{}, fmt.Errorf("save notebook: %w", err)
	}
	return nb, nil
}

// Get returns a notebook of the owner.
func (s *Service) Get(ctx context.Context, owner, id string) (domnb.Notebook, error) {
	nb, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return domnb.Notebook{}, fmt.Errorf("get notebook: %w", err)
	}
	return nb, nil
}

// List returns the owner's notebooks, most recently updated first.
// It also serves as the search corpus.
func (s *Service) List(ctx context.Context, owner string) ([]domnb.Notebook, error) {
	nbs, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}
	return nbs, nil
}

// Delete removes a notebook and its stored analysis.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return fmt.Errorf("delete notebook: %w", err)
	}
	if s.snapshots != nil {
		if err := s.snapshots.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete analysis snapshot: %w", err)
		}
	}
	return nil
}

// AddEntry appends an entry and bumps the notebook's modification time.
func (s *Service) AddEntry(ctx context.Context, owner, notebookID string, in EntryInput) (domnb.Entry, error) {
	nb, err := s.repo.Get(ctx, owner, notebookID)
	if err != nil {
		return domnb.Entry{}, fmt.Errorf("get notebook: %w", err)
	}

	now := s.now().UTC()
	e, err := domnb.NewEntry(s.newID(), in.Type, in.Title, in.Content, in.Tags, now)
	if err != nil {
		return domnb.Entry{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	updated := nb.WithEntry(e, now)
	if err := s.repo.Save(ctx, &updated); err != nil {
		return domnb.Entry{}, fmt.Errorf("save notebook: %w", err)
	}
	return e, nil
}

// Stats computes dashboard statistics over the trailing activity window.
func (s *Service) Stats(ctx context.Context, owner string) (Stats, error) {
	nbs, err := s.repo.List(ctx, owner)
	if err != nil {
		return Stats{}, fmt.Errorf("list notebooks: %w", err)
	}

	since := s.now().Add(-ActivityWindow)
	st := Stats{TotalNotebooks: len(nbs)}
	tagCounts := make(map[string]int)

	for i := range nbs {
		nb := &nbs[i]
		if !nb.UpdatedAt().Before(since) {
			st.ActiveNotebooks++
		}
		for _, e := range nb.Entries() {
			st.TotalEntries++
			if !e.CreatedAt().Before(since) {
				st.MonthlyEntries++
			}
		}
		for _, tag := range nb.Tags() {
			tagCounts[tag]++
		}
	}

	st.PopularTags = popularTags(tagCounts, PopularTagsMax)
	return st, nil
}

// popularTags ranks tags by count, ties by name.
func popularTags(counts map[string]int, limit int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, TagCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
