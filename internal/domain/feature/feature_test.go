package feature

import (
	"math"
	"testing"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"a"}, nil, 0},
		{"identical", []string{"a", "b"}, []string{"b", "a"}, 1},
		{"half", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"duplicates ignored", []string{"a", "a"}, []string{"a"}, 1},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Jaccard(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Jaccard(%v, %v) = %f, want %f", tc.a, tc.b, got, tc.want)
			}
			if rev := Jaccard(tc.b, tc.a); math.Abs(rev-got) > 1e-12 {
				t.Errorf("Jaccard not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestIntersect_KeepsOrder(t *testing.T) {
	got := Intersect([]string{"c", "a", "b", "a"}, []string{"a", "c"})
	if len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Errorf("unexpected intersection: %v", got)
	}
}

func TestTopKeywords(t *testing.T) {
	v := Vector{Keywords: []string{"a", "b", "c"}}
	if got := v.TopKeywords(5); len(got) != 3 {
		t.Errorf("expected all 3 keywords, got %v", got)
	}
	if got := v.TopKeywords(2); len(got) != 2 || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}
