package kabunote

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func mustNotebook(t *testing.T, id, title string, tags []string, age time.Duration) Notebook {
	t.Helper()
	nb, err := NewNotebook(id, "alice", NotebookAttrs{Title: title, Tags: tags}, fixedNow.Add(-age))
	if err != nil {
		t.Fatalf("NewNotebook(%s): %v", id, err)
	}
	return nb
}

func TestAnalyze_NeverFails(t *testing.T) {
	eng := New()

	for _, tc := range []struct{ content, title string }{
		{"", ""},
		{"業績は好調で利益も増加。株価の上昇が期待できる。", "決算"},
		{"\x00\xff", "壊れた入力"},
	} {
		res := eng.Analyze(tc.content, tc.title)
		if !res.Valid() {
			t.Errorf("Analyze(%q) returned invalid result: %+v", tc.content, res)
		}
	}
}

func TestClassify(t *testing.T) {
	eng := New()
	res := eng.Classify("配当利回り4%の高配当株。配当を重視して長期保有。", "高配当")
	if res.InvestmentStrategy == "" || res.ContentType == "" || res.AnalysisDepth == "" {
		t.Errorf("missing labels: %+v", res)
	}
}

func TestSearch(t *testing.T) {
	eng := New(WithClock(func() time.Time { return fixedNow }))
	corpus := []Notebook{
		mustNotebook(t, "a", "トヨタ自動車", []string{"自動車"}, time.Hour),
		mustNotebook(t, "b", "三菱UFJ", []string{"銀行"}, time.Hour),
	}

	hits := eng.Search("トヨタ", corpus, 0)
	if len(hits) != 1 || hits[0].NotebookID() != "a" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestSearch_ShortQueryIsEmptyNotError(t *testing.T) {
	eng := New()
	corpus := []Notebook{mustNotebook(t, "a", "トヨタ自動車", nil, time.Hour)}

	for _, q := range []string{"", "a", "ト"} {
		if hits := eng.Search(q, corpus, 5); hits == nil || len(hits) != 0 {
			t.Errorf("Search(%q) = %v, want empty list", q, hits)
		}
	}
	if hits := eng.Search("トヨタ", nil, 5); hits == nil || len(hits) != 0 {
		t.Errorf("expected empty list for empty corpus, got %v", hits)
	}
}

func TestRelated_ExcludesTarget(t *testing.T) {
	eng := New(WithClock(func() time.Time { return fixedNow }))
	target := mustNotebook(t, "a", "トヨタ自動車", []string{"自動車", "高配当"}, time.Hour)
	corpus := []Notebook{
		target,
		mustNotebook(t, "b", "ホンダ", []string{"自動車", "高配当"}, time.Hour),
	}

	for _, r := range eng.Related(target, corpus, 0) {
		if r.NotebookID() == "a" {
			t.Error("target recommended to itself")
		}
	}
}

func TestFeaturesAndSimilarity(t *testing.T) {
	eng := New()
	a := eng.Features(mustNotebook(t, "a", "トヨタ", []string{"自動車"}, 0))
	b := eng.Features(mustNotebook(t, "b", "ホンダ", []string{"自動車"}, 0))

	if len(a.Tags) != 1 || a.Tags[0] != "自動車" {
		t.Errorf("unexpected tags: %v", a.Tags)
	}
	s := Similarity(a, b)
	if s <= 0 || s > 1 {
		t.Errorf("similarity out of range: %f", s)
	}
	if self := Similarity(a, a); self < s {
		t.Errorf("self similarity %f below cross similarity %f", self, s)
	}
}

func TestNewEntry_Validation(t *testing.T) {
	if _, err := NewEntry("e1", "", "", "  ", nil, fixedNow); err == nil {
		t.Error("expected error for empty content")
	}
	en, err := NewEntry("e1", "", "", "メモ", nil, fixedNow)
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	if en.Type() != "memo" {
		t.Errorf("default type: got %s", en.Type())
	}
}
