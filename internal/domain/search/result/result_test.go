package result

import (
	"testing"
	"time"
)

func TestNewHit(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	h := NewHit("nb-1", "トヨタ", "EV", 0.82, "...配当...", []string{"高配当"}, at, 3)

	if h.NotebookID() != "nb-1" {
		t.Errorf("NotebookID() = %q", h.NotebookID())
	}
	if h.Score() != 0.82 {
		t.Errorf("Score() = %f", h.Score())
	}
	if h.Preview() != "...配当..." {
		t.Errorf("Preview() = %q", h.Preview())
	}
	if len(h.Tags()) != 1 || h.Tags()[0] != "高配当" {
		t.Errorf("Tags() = %v", h.Tags())
	}
	if !h.UpdatedAt().Equal(at) {
		t.Errorf("UpdatedAt() = %v", h.UpdatedAt())
	}
	if h.EntryCount() != 3 {
		t.Errorf("EntryCount() = %d", h.EntryCount())
	}
}

func TestNewRelated(t *testing.T) {
	r := NewRelated("nb-2", "三菱UFJ", "", 0.45, []string{"共通タグ: 高配当"}, nil, time.Time{})

	if r.NotebookID() != "nb-2" {
		t.Errorf("NotebookID() = %q", r.NotebookID())
	}
	if r.Similarity() != 0.45 {
		t.Errorf("Similarity() = %f", r.Similarity())
	}
	if len(r.MatchingAspects()) != 1 {
		t.Errorf("MatchingAspects() = %v", r.MatchingAspects())
	}
	if r.Tags() != nil {
		t.Errorf("Tags() = %v, want nil", r.Tags())
	}
}
