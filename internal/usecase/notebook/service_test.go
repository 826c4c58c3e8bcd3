package notebook

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/kabunote/internal/domain"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

// --- Mocks ---

type mockRepo struct {
	items   map[string]domnb.Notebook
	saveErr error
	saved   int
}

func newMockRepo() *mockRepo { return &mockRepo{items: map[string]domnb.Notebook{}} }

func (m *mockRepo) Save(_ context.Context, nb *domnb.Notebook) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved++
	m.items[nb.ID()] = *nb
	return nil
}

func (m *mockRepo) Get(_ context.Context, owner, id string) (domnb.Notebook, error) {
	nb, ok := m.items[id]
	if !ok || nb.Owner() != owner {
		return domnb.Notebook{}, domain.ErrNotebookNotFound
	}
	return nb, nil
}

func (m *mockRepo) List(_ context.Context, owner string) ([]domnb.Notebook, error) {
	var out []domnb.Notebook
	for _, nb := range m.items {
		if nb.Owner() == owner {
			out = append(out, nb)
		}
	}
	return out, nil
}

func (m *mockRepo) Delete(ctx context.Context, owner, id string) error {
	if _, err := m.Get(ctx, owner, id); err != nil {
		return err
	}
	delete(m.items, id)
	return nil
}

type mockSnapshots struct {
	deleted []string
	err     error
}

func (m *mockSnapshots) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	svc := New(repo).WithClock(func() time.Time { return now })
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return svc, repo
}

// --- Tests ---

func TestCreate(t *testing.T) {
	svc, repo := newTestService(t)
	nb, err := svc.Create(context.Background(), "alice", domnb.Attrs{Title: "トヨタ", Tags: []string{"高配当"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nb.ID() != "id-1" || nb.Owner() != "alice" {
		t.Errorf("unexpected notebook: %s %s", nb.ID(), nb.Owner())
	}
	if !nb.CreatedAt().Equal(now) || !nb.UpdatedAt().Equal(now) {
		t.Errorf("unexpected timestamps: %v %v", nb.CreatedAt(), nb.UpdatedAt())
	}
	if repo.saved != 1 {
		t.Errorf("expected 1 save, got %d", repo.saved)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc, repo := newTestService(t)
	_, err := svc.Create(context.Background(), "alice", domnb.Attrs{Title: "  "})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if repo.saved != 0 {
		t.Error("invalid notebook must not be saved")
	}
}

func TestCreate_SaveError(t *testing.T) {
	svc, repo := newTestService(t)
	repo.saveErr = errors.New("db down")
	if _, err := svc.Create(context.Background(), "alice", domnb.Attrs{Title: "x"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), "alice", "missing")
	if !errors.Is(err, domain.ErrNotebookNotFound) {
		t.Fatalf("expected ErrNotebookNotFound, got %v", err)
	}
}

func TestAddEntry(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	nb, _ := svc.Create(ctx, "alice", domnb.Attrs{Title: "トヨタ"})

	later := now.Add(time.Hour)
	svc.WithClock(func() time.Time { return later })

	e, err := svc.AddEntry(ctx, "alice", nb.ID(), EntryInput{Content: "決算メモ", Title: "Q1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Type() != domnb.EntryMemo {
		t.Errorf("expected default memo type, got %s", e.Type())
	}

	stored := repo.items[nb.ID()]
	if stored.EntryCount() != 1 {
		t.Fatalf("expected 1 entry, got %d", stored.EntryCount())
	}
	if !stored.UpdatedAt().Equal(later) {
		t.Errorf("expected updated_at to move to %v, got %v", later, stored.UpdatedAt())
	}
	if !stored.CreatedAt().Equal(now) {
		t.Errorf("created_at must not change, got %v", stored.CreatedAt())
	}
}

func TestAddEntry_Invalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	nb, _ := svc.Create(ctx, "alice", domnb.Attrs{Title: "トヨタ"})

	_, err := svc.AddEntry(ctx, "alice", nb.ID(), EntryInput{Content: "  "})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestAddEntry_OtherOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	nb, _ := svc.Create(ctx, "alice", domnb.Attrs{Title: "トヨタ"})

	_, err := svc.AddEntry(ctx, "bob", nb.ID(), EntryInput{Content: "x"})
	if !errors.Is(err, domain.ErrNotebookNotFound) {
		t.Fatalf("expected ErrNotebookNotFound, got %v", err)
	}
}

func TestDelete_RemovesSnapshot(t *testing.T) {
	svc, repo := newTestService(t)
	snaps := &mockSnapshots{}
	svc.WithSnapshots(snaps)
	ctx := context.Background()
	nb, _ := svc.Create(ctx, "alice", domnb.Attrs{Title: "トヨタ"})

	if err := svc.Delete(ctx, "alice", nb.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.items[nb.ID()]; ok {
		t.Error("expected notebook to be removed")
	}
	if len(snaps.deleted) != 1 || snaps.deleted[0] != nb.ID() {
		t.Errorf("expected snapshot removal, got %v", snaps.deleted)
	}
}

func TestDelete_NotFoundSkipsSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	snaps := &mockSnapshots{}
	svc.WithSnapshots(snaps)

	err := svc.Delete(context.Background(), "alice", "missing")
	if !errors.Is(err, domain.ErrNotebookNotFound) {
		t.Fatalf("expected ErrNotebookNotFound, got %v", err)
	}
	if len(snaps.deleted) != 0 {
		t.Error("snapshot must not be touched for a missing notebook")
	}
}

func TestStats(t *testing.T) {
	svc, repo := newTestService(t)
	old := now.Add(-45 * 24 * time.Hour)
	recent := now.Add(-2 * 24 * time.Hour)

	entry := func(id string, at time.Time) domnb.Entry {
		return domnb.ReconstructEntry(id, domnb.EntryMemo, "", "memo", nil, at)
	}
	put := func(id string, tags []string, updated time.Time, entries ...domnb.Entry) {
		repo.items[id] = domnb.Reconstruct(id, "alice", domnb.Attrs{Title: id, Tags: tags}, entries, old, updated)
	}
	put("a", []string{"高配当", "長期投資"}, recent, entry("a1", old), entry("a2", recent))
	put("b", []string{"高配当"}, old, entry("b1", old))
	put("c", []string{"決算分析", "長期投資", "高配当"}, recent)
	repo.items["z"] = domnb.Reconstruct("z", "bob", domnb.Attrs{Title: "z", Tags: []string{"x"}}, nil, old, recent)

	st, err := svc.Stats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalNotebooks != 3 || st.ActiveNotebooks != 2 {
		t.Errorf("unexpected notebook counts: %+v", st)
	}
	if st.TotalEntries != 3 || st.MonthlyEntries != 1 {
		t.Errorf("unexpected entry counts: %+v", st)
	}
	want := []TagCount{{"高配当", 3}, {"長期投資", 2}, {"決算分析", 1}}
	if len(st.PopularTags) != len(want) {
		t.Fatalf("unexpected popular tags: %v", st.PopularTags)
	}
	for i, tc := range want {
		if st.PopularTags[i] != tc {
			t.Errorf("position %d: expected %v, got %v", i, tc, st.PopularTags[i])
		}
	}
}

func TestPopularTags_LimitAndTies(t *testing.T) {
	counts := map[string]int{}
	for i := 0; i < 12; i++ {
		counts[fmt.Sprintf("tag-%02d", i)] = 1
	}
	counts["top"] = 5

	got := popularTags(counts, PopularTagsMax)
	if len(got) != PopularTagsMax {
		t.Fatalf("expected %d tags, got %d", PopularTagsMax, len(got))
	}
	if got[0].Name != "top" || got[1].Name != "tag-00" || got[9].Name != "tag-08" {
		t.Errorf("unexpected ranking: %v", got)
	}
}
