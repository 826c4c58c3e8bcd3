package analysiscache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/db"
	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
)

type mockAnalyzer struct {
	result analysis.Result
	calls  int
}

func (m *mockAnalyzer) Analyze(_, _ string) analysis.Result {
	m.calls++
	return m.result
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setFn        func(ctx context.Context, key string, value []byte) error
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

// mockHashStore keeps hashes in memory.
type mockHashStore struct {
	hashes  map[string]map[string]string
	hsetErr error
}

func newMockHashStore() *mockHashStore {
	return &mockHashStore{hashes: map[string]map[string]string{}}
}

func (m *mockHashStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	h, ok := m.hashes[key]
	if !ok {
		h = map[string]string{}
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *mockHashStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *mockHashStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.hashes[key]
	return ok, nil
}

func (m *mockHashStore) Del(_ context.Context, key string) error {
	delete(m.hashes, key)
	return nil
}

func positiveResult() analysis.Result {
	return analysis.Result{
		SuggestedTags:      []string{"高配当"},
		StockMentions:      []string{"トヨタ"},
		Sentiment:          analysis.Positive,
		Confidence:         0.8,
		RiskLevel:          analysis.RiskLow,
		Keywords:           []string{"トヨタ", "増配"},
		InvestmentInsights: []string{"ポジティブな材料"},
		AnalysisScore:      55,
	}
}

func newTestCachedAnalyzer(t *testing.T, inner *mockAnalyzer, ttl time.Duration) (*CachedAnalyzer, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New(inner, ms, ttl, nil, zap.NewNop()), ms
}
