package analysis

// Output bounds.
const (
	MaxSuggestedTags = 6
	MaxKeywords      = 8
	MaxScore         = 100
)

// FallbackInsight is the single insight reported when analysis fails.
const FallbackInsight = "分析処理中にエラーが発生しました"

// Sentiment is the coarse polarity of a text.
type Sentiment string

// Sentiment constants.
const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// IsValid checks if the sentiment is one of the supported values.
func (s Sentiment) IsValid() bool {
	return s == Positive || s == Negative || s == Neutral
}

// RiskLevel is the coarse risk rating of a text.
type RiskLevel string

// Risk level constants.
const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// IsValid checks if the risk level is one of the supported values.
func (r RiskLevel) IsValid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh || r == RiskUnknown
}

// StockMention is one detected issuer.
type StockMention struct {
	Stock      string  `json:"stock"`
	Confidence float64 `json:"confidence"`
	Mentions   int     `json:"mentions"`
}

// TagMatch is one matched tag pattern before ranking.
type TagMatch struct {
	Tag      string  `json:"tag"`
	Weight   float64 `json:"weight"`
	Mentions int     `json:"mentions"`
}

// Importance is the ranking key of a tag match.
func (m TagMatch) Importance() float64 { return m.Weight * float64(m.Mentions) }

// SentimentScores holds the raw keyword counts behind a sentiment label.
type SentimentScores struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Result is the output of the content analyzer for one text.
type Result struct {
	SuggestedTags      []string        `json:"suggested_tags"`
	StockMentions      []string        `json:"stock_mentions"`
	Sentiment          Sentiment       `json:"sentiment"`
	Confidence         float64         `json:"confidence"`
	RiskLevel          RiskLevel       `json:"risk_level"`
	Keywords           []string        `json:"keywords"`
	InvestmentInsights []string        `json:"investment_insights"`
	AnalysisScore      int             `json:"analysis_score"`
	StockDetails       []StockMention  `json:"stock_details,omitempty"`
	TagDetails         []TagMatch      `json:"tag_details,omitempty"`
	SentimentScores    SentimentScores `json:"sentiment_scores"`
}

// Fallback returns the safe default result used when analysis fails.
func Fallback() Result {
	return Result{
		SuggestedTags:      []string{},
		StockMentions:      []string{},
		Sentiment:          Neutral,
		Confidence:         0,
		RiskLevel:          RiskUnknown,
		Keywords:           []string{},
		InvestmentInsights: []string{FallbackInsight},
		AnalysisScore:      0,
	}
}

// HasTag reports whether tag is among the suggested tags.
func (r *Result) HasTag(tag string) bool {
	for _, t := range r.SuggestedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Valid reports whether the result satisfies the documented bounds.
func (r *Result) Valid() bool {
	return r.AnalysisScore >= 0 && r.AnalysisScore <= MaxScore &&
		r.Confidence >= 0 && r.Confidence <= 1 &&
		r.Sentiment.IsValid() && r.RiskLevel.IsValid() &&
		len(r.SuggestedTags) <= MaxSuggestedTags &&
		len(r.Keywords) <= MaxKeywords
}
