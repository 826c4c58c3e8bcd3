package notebook

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/kabunote/internal/db"
	domnb "github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

// memStore is an in-memory implementation of the consumer interface.
// The *Err fields force the matching operation to fail.
type memStore struct {
	kv   map[string][]byte
	sets map[string]map[string]struct{}

	getErr  error
	setErr  error
	saddErr error
	scanErr error
}

func newMemStore() *memStore {
	return &memStore{kv: map[string][]byte{}, sets: map[string]map[string]struct{}{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) GetMulti(_ context.Context, keys []string) ([][]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.kv[k]
	}
	return out, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.kv[key] = value
	return nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	delete(m.kv, key)
	delete(m.sets, key)
	return nil
}

func (m *memStore) SAdd(_ context.Context, key string, members ...string) error {
	if m.saddErr != nil {
		return m.saddErr
	}
	s, ok := m.sets[key]
	if !ok {
		s = map[string]struct{}{}
		m.sets[key] = s
	}
	for _, mem := range members {
		s[mem] = struct{}{}
	}
	return nil
}

func (m *memStore) SRem(_ context.Context, key string, members ...string) error {
	for _, mem := range members {
		delete(m.sets[key], mem)
	}
	return nil
}

func (m *memStore) SMembers(_ context.Context, key string) ([]string, error) {
	out := make([]string, 0, len(m.sets[key]))
	for mem := range m.sets[key] {
		out = append(out, mem)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	// Only the "<prefix>*<suffix>" shape is needed here.
	prefix, suffix, _ := strings.Cut(pattern, "*")
	var keys []string
	for k := range m.sets {
		if strings.HasPrefix(k, prefix) && strings.HasSuffix(k, suffix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(ms), ms
}

func testNotebook(t *testing.T, id, owner string, updated time.Time) domnb.Notebook {
	t.Helper()
	e := domnb.ReconstructEntry("e-1", domnb.EntryEarnings, "Q1決算", "増収増益で好調", []string{"決算"}, t0)
	return domnb.Reconstruct(id, owner, domnb.Attrs{
		Title:     id + " notebook",
		StockCode: "7203",
		Tags:      []string{"高配当"},
	}, []domnb.Entry{e}, t0, updated)
}
