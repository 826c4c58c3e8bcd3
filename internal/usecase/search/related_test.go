package search

import (
	"math"
	"testing"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/feature"
	"github.com/kailas-cloud/kabunote/internal/domain/notebook"
)

func hasString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestFeatures(t *testing.T) {
	e := newTestEngine(t)
	f := e.Features(toyotaNotebook())

	if !hasString(f.Industries, "自動車") {
		t.Errorf("expected 自動車 industry, got %v", f.Industries)
	}
	for _, style := range []string{"高配当投資", "成長投資", "長期投資"} {
		if !hasString(f.Styles, style) {
			t.Errorf("expected style %s, got %v", style, f.Styles)
		}
	}
	if !hasString(f.StockMentions, "7203トヨタ") {
		t.Errorf("expected Toyota mention, got %v", f.StockMentions)
	}
	if f.EntryCount != 1 {
		t.Errorf("expected entry count 1, got %d", f.EntryCount)
	}
	if len(f.Keywords) == 0 {
		t.Error("expected keywords")
	}
}

func TestFeatures_TagMatchesIndustryKey(t *testing.T) {
	e := newTestEngine(t)
	nb := notebook.Reconstruct("nb", "u1", notebook.Attrs{Title: "メモ", Tags: []string{"ヘルスケア関連"}},
		nil, testNow, testNow)
	f := e.Features(nb)
	if !hasString(f.Industries, "ヘルスケア") {
		t.Errorf("expected ヘルスケア from tag, got %v", f.Industries)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	e := newTestEngine(t)
	corpus := testCorpus()
	for i := range corpus {
		for j := range corpus {
			a, b := e.Features(corpus[i]), e.Features(corpus[j])
			if ab, ba := Similarity(a, b), Similarity(b, a); ab != ba {
				t.Errorf("similarity not symmetric for %d,%d: %f vs %f", i, j, ab, ba)
			}
		}
	}
}

func TestSimilarity_Self(t *testing.T) {
	e := newTestEngine(t)
	f := e.Features(toyotaNotebook())
	if got := Similarity(f, f); math.Abs(got-1) > 1e-9 {
		t.Errorf("expected self similarity 1, got %f", got)
	}
}

func TestSimilarity_EmptyProfiles(t *testing.T) {
	if got := Similarity(feature.Vector{}, feature.Vector{}); got != 0 {
		t.Errorf("expected 0 for empty profiles, got %f", got)
	}
}

func TestRelated_DividendNotebooks(t *testing.T) {
	e := newTestEngine(t)
	target := mufgNotebook()
	related := e.Related(target, testCorpus(), 5)

	if len(related) == 0 {
		t.Fatal("expected related notebooks")
	}
	if related[0].NotebookID() != "nb-toyota" {
		t.Errorf("expected toyota first, got %s", related[0].NotebookID())
	}
	for _, r := range related {
		if r.NotebookID() == target.ID() {
			t.Error("target must be excluded")
		}
		if r.Similarity() <= minSimilarity {
			t.Errorf("similarity %f below threshold", r.Similarity())
		}
	}
	aspects := related[0].MatchingAspects()
	if len(aspects) == 0 || aspects[0] != "共通タグ: 高配当, 長期投資" {
		t.Errorf("unexpected aspects %v", aspects)
	}
}

func TestRelated_EmptyCorpus(t *testing.T) {
	e := newTestEngine(t)
	if got := e.Related(mufgNotebook(), nil, 5); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %v", got)
	}
}

func TestMatchingAspects(t *testing.T) {
	a := feature.Vector{
		Tags:       []string{"a", "b", "c", "d"},
		Industries: []string{"金融"},
		Styles:     []string{"高配当投資", "長期投資"},
		Sentiment:  analysis.Positive,
	}
	b := feature.Vector{
		Tags:       []string{"d", "c", "b", "a"},
		Industries: []string{"金融", "IT"},
		Styles:     []string{"長期投資"},
		Sentiment:  analysis.Positive,
	}
	got := MatchingAspects(a, b)
	want := []string{"共通タグ: a, b, c", "同業界: 金融", "投資スタイル: 長期投資", "センチメント: positive"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("aspect %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	a.Sentiment, b.Sentiment = analysis.Neutral, analysis.Neutral
	if got := MatchingAspects(a, b); len(got) != 3 {
		t.Errorf("neutral sentiment must not match, got %v", got)
	}
}
