// Package classify derives coarse strategy, depth and content-type labels
// from a note and its analysis.
package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/classification"
)

type strategyRule struct {
	strategy classification.Strategy
	tags     []string
	term     string
}

// First match wins.
var strategyRules = []strategyRule{
	{classification.DividendIncome, []string{"高配当", "配当", "dividend"}, "配当"},
	{classification.GrowthInvesting, []string{"成長株", "グロース", "growth"}, "成長"},
	{classification.ValueInvesting, []string{"バリュー投資", "割安", "value"}, "割安"},
	{classification.ShortTermTrading, []string{"短期取引", "デイトレ", "トレード"}, "トレード"},
	{classification.LongTermHolding, []string{"長期投資", "ホールド"}, "長期"},
}

var strategyActions = map[classification.Strategy][]string{
	classification.DividendIncome: {
		"配当利回り計算ツールで現在の利回りを確認",
		"配当性向の安定性を分析",
		"他の高配当銘柄との比較検討",
	},
	classification.GrowthInvesting: {
		"売上成長率の推移を追跡",
		"競合他社との成長率比較",
		"将来性のある事業領域の分析",
	},
	classification.ValueInvesting: {
		"PER・PBR等の割安指標確認",
		"同業他社との指標比較",
		"企業の本質的価値分析",
	},
}

// Recommended action texts outside the strategy tables.
const (
	ActionAddDetail  = "より詳細な分析データの追加を検討"
	ActionRiskReview = "リスク要因の詳細分析を実施"
	ActionTiming     = "投資タイミングの検討"
)

const lowScore = 50

var (
	quantityRe   = regexp.MustCompile(`\p{Nd}+[%円ドル万億]`)
	metricsRe    = regexp.MustCompile(`(?i)per|pbr|roe|eps|売上|利益|配当|成長率|時価総額`)
	comparisonRe = regexp.MustCompile(`前年|同期|比較|対比|vs`)
)

// Classifier labels notes. Safe for concurrent use.
type Classifier struct {
	analyzer Analyzer
}

// New creates a classifier. analyzer is only used by Categorize.
func New(a Analyzer) *Classifier {
	return &Classifier{analyzer: a}
}

// Categorize analyzes content and classifies it.
func (c *Classifier) Categorize(content, title string) classification.Result {
	return c.Classify(content, title, c.analyzer.Analyze(content, title))
}

// Classify derives labels from content, title and a precomputed analysis.
func (c *Classifier) Classify(content, title string, res analysis.Result) classification.Result {
	strategy := Strategy(res.SuggestedTags, content)
	depth := Depth(content, res.AnalysisScore)
	ctype := ContentType(content, title)

	return classification.Result{
		InvestmentStrategy:       strategy,
		AnalysisDepth:            depth,
		ContentType:              ctype,
		RecommendedActions:       Actions(strategy, res),
		ClassificationConfidence: classification.Confidence(strategy, depth, ctype),
	}
}

// Strategy infers the investment strategy from tags and content.
// Empty content classifies by tags alone.
func Strategy(tags []string, content string) classification.Strategy {
	lower := strings.ToLower(content)
	for _, r := range strategyRules {
		if anyTag(tags, r.tags) || strings.Contains(lower, r.term) {
			return r.strategy
		}
	}
	return classification.Diversified
}

func anyTag(tags, wanted []string) bool {
	for _, t := range tags {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

// Depth rates how thorough content is, given its analysis score.
func Depth(content string, score int) classification.Depth {
	depth := 0
	switch n := utf8.RuneCountInString(content); {
	case n > 500:
		depth += 2
	case n > 200:
		depth++
	}
	if quantityRe.MatchString(content) {
		depth += 2
	}
	if metricsRe.MatchString(content) {
		depth += 2
	}
	if comparisonRe.MatchString(content) {
		depth++
	}
	switch {
	case score > 80:
		depth += 2
	case score > 50:
		depth++
	}

	switch {
	case depth >= 7:
		return classification.Detailed
	case depth >= 4:
		return classification.Moderate
	default:
		return classification.Basic
	}
}

// ContentType labels content by the first matching term group.
func ContentType(content, title string) classification.ContentType {
	c := strings.ToLower(content)
	t := strings.ToLower(title)
	has := func(s string, terms ...string) bool {
		for _, term := range terms {
			if strings.Contains(s, term) {
				return true
			}
		}
		return false
	}

	switch {
	case has(c, "決算", "業績", "earnings"):
		return classification.EarningsAnalysis
	case has(t, "ニュース") || has(c, "発表", "報道"):
		return classification.NewsAnalysis
	case has(c, "チャート", "テクニカル", "移動平均"):
		return classification.TechnicalAnalysis
	case has(c, "ファンダメンタル", "per", "pbr"):
		return classification.FundamentalAnalysis
	case has(c, "計算", "利回り", "投資金額"):
		return classification.Calculation
	case has(c, "リスク", "危険", "注意"):
		return classification.RiskAnalysis
	default:
		return classification.GeneralMemo
	}
}

// EntryContentType is the lighter content-type derivation stored with each entry.
func EntryContentType(tags []string, content string) classification.ContentType {
	c := strings.ToLower(content)
	switch {
	case anyTag(tags, []string{"決算分析"}) || strings.Contains(c, "決算"):
		return classification.EarningsAnalysis
	case anyTag(tags, []string{"テクニカル"}) || strings.Contains(c, "チャート"):
		return classification.TechnicalAnalysis
	case anyTag(tags, []string{"ファンダメンタル"}):
		return classification.FundamentalAnalysis
	case anyTag(tags, []string{"リスク管理"}) || strings.Contains(c, "リスク"):
		return classification.RiskAnalysis
	default:
		return classification.GeneralMemo
	}
}

// Actions lists next steps for a strategy and analysis, at most classification.MaxActions.
func Actions(strategy classification.Strategy, res analysis.Result) []string {
	actions := append([]string{}, strategyActions[strategy]...)
	if res.AnalysisScore < lowScore {
		actions = append(actions, ActionAddDetail)
	}
	switch res.Sentiment {
	case analysis.Negative:
		actions = append(actions, ActionRiskReview)
	case analysis.Positive:
		actions = append(actions, ActionTiming)
	}
	if len(actions) > classification.MaxActions {
		actions = actions[:classification.MaxActions]
	}
	return actions
}
