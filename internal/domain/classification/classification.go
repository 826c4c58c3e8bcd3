package classification

// Strategy is the inferred investment strategy of a text.
type Strategy string

// Strategy constants.
const (
	DividendIncome   Strategy = "dividend_income"
	GrowthInvesting  Strategy = "growth_investing"
	ValueInvesting   Strategy = "value_investing"
	ShortTermTrading Strategy = "short_term_trading"
	LongTermHolding  Strategy = "long_term_holding"
	Diversified      Strategy = "diversified"
)

// Depth is how thorough an analysis text is.
type Depth string

// Depth constants.
const (
	Detailed Depth = "detailed"
	Moderate Depth = "moderate"
	Basic    Depth = "basic"
)

// ContentType is the kind of note a text is.
type ContentType string

// Content type constants.
const (
	EarningsAnalysis    ContentType = "earnings_analysis"
	NewsAnalysis        ContentType = "news_analysis"
	TechnicalAnalysis   ContentType = "technical_analysis"
	FundamentalAnalysis ContentType = "fundamental_analysis"
	Calculation         ContentType = "calculation"
	RiskAnalysis        ContentType = "risk_analysis"
	GeneralMemo         ContentType = "general_memo"
)

// MaxActions caps the recommended action list.
const MaxActions = 5

// Result is the classifier output.
type Result struct {
	InvestmentStrategy       Strategy    `json:"investment_strategy"`
	AnalysisDepth            Depth       `json:"analysis_depth"`
	ContentType              ContentType `json:"content_type"`
	RecommendedActions       []string    `json:"recommended_actions"`
	ClassificationConfidence float64     `json:"classification_confidence"`
}

// Confidence returns the certainty attached to a strategy label.
func (s Strategy) Confidence() float64 {
	if s == Diversified {
		return 0.5
	}
	return 0.8
}

// Confidence returns the certainty attached to a depth label.
func (d Depth) Confidence() float64 {
	switch d {
	case Detailed:
		return 0.9
	case Moderate:
		return 0.7
	default:
		return 0.5
	}
}

// Confidence returns the certainty attached to a content type label.
func (c ContentType) Confidence() float64 {
	if c == GeneralMemo {
		return 0.4
	}
	return 0.8
}

// Confidence is the mean of the three label confidences.
func Confidence(s Strategy, d Depth, c ContentType) float64 {
	return (s.Confidence() + d.Confidence() + c.Confidence()) / 3
}
