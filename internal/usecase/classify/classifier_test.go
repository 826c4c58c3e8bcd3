package classify

import (
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/classification"
	"github.com/kailas-cloud/kabunote/internal/usecase/analyzer"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return New(analyzer.New(zap.NewNop()))
}

func detailedText() string {
	return strings.Repeat("事業セグメントごとの収益構造を丁寧に確認した。", 20) +
		"売上高は前年同期比12%増、営業利益率は15%。ROEは14%、PERは18倍でPBRは1.2倍。"
}

func TestCategorize_DividendIncome(t *testing.T) {
	c := newTestClassifier(t)
	res := c.Categorize("配当利回り5%の高配当株を長期保有", "")
	if res.InvestmentStrategy != classification.DividendIncome {
		t.Errorf("expected dividend_income, got %s", res.InvestmentStrategy)
	}
}

func TestCategorize_DetailedText(t *testing.T) {
	c := newTestClassifier(t)
	a := analyzer.New(zap.NewNop())
	text := detailedText()

	if score := a.Analyze(text, "").AnalysisScore; score <= 50 {
		t.Fatalf("expected score > 50, got %d", score)
	}
	res := c.Categorize(text, "")
	if res.AnalysisDepth != classification.Detailed {
		t.Errorf("expected detailed, got %s", res.AnalysisDepth)
	}
}

func TestCategorize_ShortText(t *testing.T) {
	c := newTestClassifier(t)
	a := analyzer.New(zap.NewNop())

	if score := a.Analyze("株 メモ", "").AnalysisScore; score > 20 {
		t.Errorf("expected score <= 20, got %d", score)
	}
	res := c.Categorize("株 メモ", "")
	if res.AnalysisDepth != classification.Basic {
		t.Errorf("expected basic, got %s", res.AnalysisDepth)
	}
	if res.InvestmentStrategy != classification.Diversified {
		t.Errorf("expected diversified, got %s", res.InvestmentStrategy)
	}
	if res.ContentType != classification.GeneralMemo {
		t.Errorf("expected general_memo, got %s", res.ContentType)
	}
	want := (0.5 + 0.5 + 0.4) / 3
	if math.Abs(res.ClassificationConfidence-want) > 1e-9 {
		t.Errorf("expected confidence %f, got %f", want, res.ClassificationConfidence)
	}
}

func TestStrategy_Priority(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		content string
		want    classification.Strategy
	}{
		{"dividend tag", []string{"高配当"}, "", classification.DividendIncome},
		{"growth before value", []string{"成長株"}, "割安です", classification.GrowthInvesting},
		{"value term", nil, "割安な水準", classification.ValueInvesting},
		{"trade term", nil, "スイングトレードで", classification.ShortTermTrading},
		{"long tag", []string{"長期投資"}, "", classification.LongTermHolding},
		{"english tag", []string{"growth"}, "", classification.GrowthInvesting},
		{"nothing", []string{"EV"}, "メモ", classification.Diversified},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Strategy(tc.tags, tc.content); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		content, title string
		want           classification.ContentType
	}{
		{"今期の決算は増益", "ニュース", classification.EarningsAnalysis},
		{"新製品", "今日のニュース", classification.NewsAnalysis},
		{"新製品を発表", "", classification.NewsAnalysis},
		{"25日移動平均を割った", "", classification.TechnicalAnalysis},
		{"PERが低い", "", classification.FundamentalAnalysis},
		{"利回りを計算", "", classification.Calculation},
		{"為替に注意", "", classification.RiskAnalysis},
		{"雑感", "", classification.GeneralMemo},
	}
	for _, tc := range tests {
		if got := ContentType(tc.content, tc.title); got != tc.want {
			t.Errorf("ContentType(%q, %q) = %s, want %s", tc.content, tc.title, got, tc.want)
		}
	}
}

func TestEntryContentType(t *testing.T) {
	tests := []struct {
		tags    []string
		content string
		want    classification.ContentType
	}{
		{[]string{"決算分析"}, "", classification.EarningsAnalysis},
		{nil, "チャートの形が良い", classification.TechnicalAnalysis},
		{[]string{"ファンダメンタル"}, "", classification.FundamentalAnalysis},
		{nil, "リスクを確認", classification.RiskAnalysis},
		{nil, "PERが低い", classification.GeneralMemo},
	}
	for _, tc := range tests {
		if got := EntryContentType(tc.tags, tc.content); got != tc.want {
			t.Errorf("EntryContentType(%v, %q) = %s, want %s", tc.tags, tc.content, got, tc.want)
		}
	}
}

func TestActions(t *testing.T) {
	res := analysis.Result{AnalysisScore: 10, Sentiment: analysis.Negative}
	got := Actions(classification.DividendIncome, res)
	if len(got) != classification.MaxActions {
		t.Fatalf("expected %d actions, got %v", classification.MaxActions, got)
	}
	if got[3] != ActionAddDetail || got[4] != ActionRiskReview {
		t.Errorf("unexpected action order: %v", got)
	}

	got = Actions(classification.Diversified, analysis.Result{AnalysisScore: 90, Sentiment: analysis.Positive})
	if len(got) != 1 || got[0] != ActionTiming {
		t.Errorf("expected only timing action, got %v", got)
	}

	got = Actions(classification.LongTermHolding, analysis.Result{AnalysisScore: 90, Sentiment: analysis.Neutral})
	if len(got) != 0 {
		t.Errorf("expected no actions, got %v", got)
	}
}

func TestClassify_UsesGivenAnalysis(t *testing.T) {
	c := New(nil)
	res := c.Classify("雑感", "", analysis.Result{SuggestedTags: []string{"バリュー投資"}, AnalysisScore: 90})
	if res.InvestmentStrategy != classification.ValueInvesting {
		t.Errorf("expected value_investing, got %s", res.InvestmentStrategy)
	}
	if res.ClassificationConfidence < 0 || res.ClassificationConfidence > 1 {
		t.Errorf("confidence out of range: %f", res.ClassificationConfidence)
	}
}

func TestDepth_ComparisonTermIsCaseSensitive(t *testing.T) {
	if got := Depth("10% vs", 60); got != classification.Moderate {
		t.Errorf("lower-case vs: expected %s, got %s", classification.Moderate, got)
	}
	if got := Depth("10% VS", 60); got != classification.Basic {
		t.Errorf("upper-case VS: expected %s, got %s", classification.Basic, got)
	}
}
