package request

import (
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("  配当  ", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "配当" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultLimit)
	}
}

func TestNew_ClampsLimit(t *testing.T) {
	r, err := New("growth", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), MaxLimit)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"single rune", "株"},
		{"too long", strings.Repeat("a", MaxQueryLength+1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.query, 10); err == nil {
				t.Errorf("expected error for %q", tc.query)
			}
		})
	}
}

func TestRelatedLimit(t *testing.T) {
	if got := RelatedLimit(0); got != DefaultRelatedLimit {
		t.Errorf("RelatedLimit(0) = %d", got)
	}
	if got := RelatedLimit(500); got != MaxRelatedLimit {
		t.Errorf("RelatedLimit(500) = %d", got)
	}
	if got := RelatedLimit(3); got != 3 {
		t.Errorf("RelatedLimit(3) = %d", got)
	}
}

func TestSearchLimit(t *testing.T) {
	for in, want := range map[int]int{0: DefaultLimit, -1: DefaultLimit, 7: 7, 1000: MaxLimit} {
		if got := SearchLimit(in); got != want {
			t.Errorf("SearchLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
