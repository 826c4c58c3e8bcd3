package analysis

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFallback_IsValid(t *testing.T) {
	f := Fallback()
	if !f.Valid() {
		t.Fatalf("fallback result must be valid: %+v", f)
	}
	if f.Sentiment != Neutral || f.RiskLevel != RiskUnknown {
		t.Errorf("unexpected fallback labels: %s %s", f.Sentiment, f.RiskLevel)
	}
	if len(f.InvestmentInsights) != 1 || f.InvestmentInsights[0] != FallbackInsight {
		t.Errorf("unexpected fallback insights: %v", f.InvestmentInsights)
	}
}

func TestResult_JSONFieldNames(t *testing.T) {
	r := Fallback()
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{
		`"suggested_tags":[]`, `"stock_mentions":[]`, `"sentiment":"neutral"`,
		`"confidence":0`, `"risk_level":"unknown"`, `"keywords":[]`,
		`"investment_insights":[`, `"analysis_score":0`,
	} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in %s", field, data)
		}
	}
}

func TestValid_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Result)
	}{
		{"score above max", func(r *Result) { r.AnalysisScore = 101 }},
		{"negative score", func(r *Result) { r.AnalysisScore = -1 }},
		{"confidence above one", func(r *Result) { r.Confidence = 1.2 }},
		{"unknown sentiment", func(r *Result) { r.Sentiment = "angry" }},
		{"unknown risk", func(r *Result) { r.RiskLevel = "extreme" }},
		{"too many tags", func(r *Result) { r.SuggestedTags = make([]string, MaxSuggestedTags+1) }},
		{"too many keywords", func(r *Result) { r.Keywords = make([]string, MaxKeywords+1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Fallback()
			tc.mutate(&r)
			if r.Valid() {
				t.Error("expected invalid result")
			}
		})
	}
}

func TestTagMatch_Importance(t *testing.T) {
	m := TagMatch{Tag: "高配当", Weight: 0.8, Mentions: 3}
	if got := m.Importance(); got < 2.39 || got > 2.41 {
		t.Errorf("expected importance 2.4, got %f", got)
	}
}
