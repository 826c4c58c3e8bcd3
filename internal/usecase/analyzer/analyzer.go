// Package analyzer extracts tags, ticker mentions, sentiment, risk, keywords
// and a completeness score from free-form investment notes.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
)

// Score thresholds and bonuses.
const (
	shortTextLength = 100
	longTextLength  = 300
	detailedLength  = 500

	lengthBonus     = 20
	quantityBonus   = 15
	metricsBonus    = 25
	comparisonBonus = 20

	insightConfidence = 0.7
)

var errPatternUnavailable = errors.New("pattern unavailable")

type stockRule struct {
	re         *regexp.Regexp
	label      string
	confidence float64
}

type tagRule struct {
	re     *regexp.Regexp
	tag    string
	weight float64
}

// Analyzer is a stateless content analyzer. Safe for concurrent use.
type Analyzer struct {
	logger *zap.Logger
	rules  Rules

	stocks []stockRule
	tags   []tagRule

	// nil when the rule failed to compile
	positive   *regexp.Regexp
	negative   *regexp.Regexp
	risk       *regexp.Regexp
	quantity   *regexp.Regexp
	metrics    *regexp.Regexp
	comparison *regexp.Regexp
	token      *regexp.Regexp

	stopWords map[string]struct{}
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRules replaces the built-in rule set.
func WithRules(r Rules) Option {
	return func(a *Analyzer) { a.rules = r }
}

// New compiles the rule set. Patterns that fail to compile are logged and skipped.
func New(logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{logger: logger, rules: DefaultRules()}
	for _, opt := range opts {
		opt(a)
	}
	a.compile()
	return a
}

func (a *Analyzer) compile() {
	for _, p := range a.rules.Stocks {
		re, err := a.compileOne("stock", p.Pattern)
		if err != nil {
			continue
		}
		a.stocks = append(a.stocks, stockRule{re: re, label: p.Label, confidence: p.Confidence})
	}
	for _, p := range a.rules.Tags {
		re, err := a.compileOne("tag", p.Pattern)
		if err != nil {
			continue
		}
		a.tags = append(a.tags, tagRule{re: re, tag: p.Tag, weight: p.Weight})
	}

	a.positive, _ = a.compileOne("positive", a.rules.Positive)
	a.negative, _ = a.compileOne("negative", a.rules.Negative)
	a.risk, _ = a.compileOne("risk", a.rules.Risk)
	a.quantity, _ = a.compileOne("quantity", a.rules.Quantity)
	a.metrics, _ = a.compileOne("metrics", a.rules.Metrics)
	a.comparison, _ = a.compileOne("comparison", a.rules.Comparison)
	a.token, _ = a.compileOne("token", a.rules.Token)

	a.stopWords = make(map[string]struct{}, len(a.rules.StopWords))
	for _, w := range a.rules.StopWords {
		a.stopWords[w] = struct{}{}
	}
}

func (a *Analyzer) compileOne(kind, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errPatternUnavailable
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		a.logger.Warn("Skipping invalid analysis pattern",
			zap.String("kind", kind), zap.String("pattern", pattern), zap.Error(err))
		return nil, fmt.Errorf("compile %s pattern: %w", kind, err)
	}
	return re, nil
}

// ErrDegradedRules is reported when part of the rule set failed to compile.
var ErrDegradedRules = errors.New("analysis rules degraded")

// HealthCheck reports whether every configured pattern compiled.
func (a *Analyzer) HealthCheck(_ context.Context) error {
	var missing []string
	if len(a.stocks) < len(a.rules.Stocks) {
		missing = append(missing, "stock")
	}
	if len(a.tags) < len(a.rules.Tags) {
		missing = append(missing, "tag")
	}
	for _, c := range []struct {
		name string
		re   *regexp.Regexp
	}{
		{"positive", a.positive}, {"negative", a.negative}, {"risk", a.risk},
		{"quantity", a.quantity}, {"metrics", a.metrics}, {"comparison", a.comparison},
		{"token", a.token},
	} {
		if c.re == nil {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrDegradedRules, strings.Join(missing, ", "))
	}
	return nil
}

// Text joins title and content the way Analyze sees them, lower-cased. The
// separating space is kept even when title is empty, and counts toward the
// length thresholds.
func Text(content, title string) string {
	return strings.ToLower(title + " " + content)
}

// Analyze produces an analysis result for content and an optional title.
// It never fails: faults yield analysis.Fallback().
func (a *Analyzer) Analyze(content, title string) (res analysis.Result) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Analysis panicked", zap.Any("panic", r))
			res = analysis.Fallback()
		}
	}()

	text := Text(content, title)

	stocks := a.detectStocks(text)
	tags, tagDetails := a.extractTags(text)

	sentiment, confidence, scores, err := a.analyzeSentiment(text)
	if err != nil {
		sentiment, confidence, scores = analysis.Neutral, 0, analysis.SentimentScores{}
	}

	risk, err := a.assessRisk(text)
	if err != nil {
		risk = analysis.RiskUnknown
	}

	keywords, err := a.extractKeywords(text)
	if err != nil {
		keywords = []string{}
	}

	score, err := a.Score(text)
	if err != nil {
		score = 0
	}

	res = analysis.Result{
		SuggestedTags:   tags,
		StockMentions:   make([]string, 0, len(stocks)),
		Sentiment:       sentiment,
		Confidence:      confidence,
		RiskLevel:       risk,
		Keywords:        keywords,
		AnalysisScore:   score,
		StockDetails:    stocks,
		TagDetails:      tagDetails,
		SentimentScores: scores,
	}
	for _, s := range stocks {
		res.StockMentions = append(res.StockMentions, s.Stock)
	}
	res.InvestmentInsights = insights(text, &res)
	return res
}

func count(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

func (a *Analyzer) detectStocks(text string) []analysis.StockMention {
	var out []analysis.StockMention
	for _, r := range a.stocks {
		if n := count(r.re, text); n > 0 {
			out = append(out, analysis.StockMention{Stock: r.label, Confidence: r.confidence, Mentions: n})
		}
	}
	return out
}

// extractTags ranks matched tags by weight x mentions, keeping table order on ties.
func (a *Analyzer) extractTags(text string) ([]string, []analysis.TagMatch) {
	var matches []analysis.TagMatch
	for _, r := range a.tags {
		if n := count(r.re, text); n > 0 {
			matches = append(matches, analysis.TagMatch{Tag: r.tag, Weight: r.weight, Mentions: n})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Importance() > matches[j].Importance()
	})

	tags := make([]string, 0, analysis.MaxSuggestedTags)
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if len(tags) == analysis.MaxSuggestedTags {
			break
		}
		if _, dup := seen[m.Tag]; dup {
			continue
		}
		seen[m.Tag] = struct{}{}
		tags = append(tags, m.Tag)
	}
	return tags, matches
}

func (a *Analyzer) analyzeSentiment(text string) (analysis.Sentiment, float64, analysis.SentimentScores, error) {
	if a.positive == nil || a.negative == nil {
		return "", 0, analysis.SentimentScores{}, errPatternUnavailable
	}
	pos := count(a.positive, text)
	neg := count(a.negative, text)

	sentiment := analysis.Neutral
	switch {
	case pos > neg+1:
		sentiment = analysis.Positive
	case neg > pos+1:
		sentiment = analysis.Negative
	}
	diff := pos - neg
	if diff < 0 {
		diff = -diff
	}
	confidence := math.Min(float64(diff+1)/5, 1)
	return sentiment, confidence, analysis.SentimentScores{Positive: pos, Negative: neg}, nil
}

func (a *Analyzer) assessRisk(text string) (analysis.RiskLevel, error) {
	if a.risk == nil {
		return "", errPatternUnavailable
	}
	switch n := count(a.risk, text); {
	case n > 2:
		return analysis.RiskHigh, nil
	case n > 0:
		return analysis.RiskMedium, nil
	default:
		return analysis.RiskLow, nil
	}
}

// extractKeywords returns the most frequent tokens, first-seen order on ties.
func (a *Analyzer) extractKeywords(text string) ([]string, error) {
	if a.token == nil {
		return nil, errPatternUnavailable
	}
	counts := make(map[string]int)
	var order []string
	for _, w := range a.token.FindAllString(text, -1) {
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		if _, stop := a.stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > analysis.MaxKeywords {
		order = order[:analysis.MaxKeywords]
	}
	if order == nil {
		order = []string{}
	}
	return order, nil
}

func insights(text string, res *analysis.Result) []string {
	var out []string
	if len(res.StockMentions) > 1 {
		out = append(out, InsightMultipleStocks)
	}
	switch {
	case res.Sentiment == analysis.Positive && res.Confidence > insightConfidence:
		out = append(out, InsightPositive)
	case res.Sentiment == analysis.Negative && res.Confidence > insightConfidence:
		out = append(out, InsightCautious)
	}
	if res.HasTag(TagEarnings) {
		out = append(out, InsightEarnings)
	}
	if res.HasTag(TagLongTerm) && res.HasTag(TagDividend) {
		out = append(out, InsightLongDividend)
	}
	if utf8.RuneCountInString(text) > detailedLength {
		out = append(out, InsightDetailed)
	}
	if len(out) == 0 {
		out = append(out, InsightGeneric)
	}
	return out
}

// Score rates how substantive a lower-cased text is, from 0 to 100.
func (a *Analyzer) Score(text string) (int, error) {
	if a.quantity == nil || a.metrics == nil || a.comparison == nil {
		return 0, errPatternUnavailable
	}
	score := 0
	n := utf8.RuneCountInString(text)
	if n > shortTextLength {
		score += lengthBonus
	}
	if n > longTextLength {
		score += lengthBonus
	}
	if a.quantity.MatchString(text) {
		score += quantityBonus
	}
	if a.metrics.MatchString(text) {
		score += metricsBonus
	}
	if a.comparison.MatchString(text) {
		score += comparisonBonus
	}
	return min(score, analysis.MaxScore), nil
}
