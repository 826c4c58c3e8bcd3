package analyzer

// StockPattern maps a regular expression to a canonical ticker label.
type StockPattern struct {
	Pattern    string
	Label      string
	Confidence float64
}

// TagPattern maps a regular expression to a suggested tag.
type TagPattern struct {
	Pattern string
	Tag     string
	Weight  float64
}

// Rules is the immutable pattern table set of an Analyzer.
// All patterns are matched case-insensitively.
type Rules struct {
	Stocks []StockPattern
	Tags   []TagPattern

	Positive   string
	Negative   string
	Risk       string
	Quantity   string
	Metrics    string
	Comparison string

	Token     string
	StopWords []string
}

// Insight texts.
const (
	InsightMultipleStocks = "複数銘柄の比較分析が含まれています"
	InsightPositive       = "ポジティブな投資判断の傾向が見られます"
	InsightCautious       = "リスクに注意した慎重な分析が行われています"
	InsightEarnings       = "決算数値に基づく分析が行われています"
	InsightLongDividend   = "長期配当投資戦略の特徴が見られます"
	InsightDetailed       = "詳細な分析内容が記録されています"
	InsightGeneric        = "投資分析の記録として適切な内容です"
)

// Tag labels the insight and classification rules refer to.
const (
	TagDividend = "高配当"
	TagEarnings = "決算分析"
	TagLongTerm = "長期投資"
)

// DefaultRules returns the built-in Japanese equity rule set.
func DefaultRules() Rules {
	return Rules{
		Stocks: []StockPattern{
			{`7203|トヨタ自動車|toyota`, "7203トヨタ", 0.95},
			{`6758|ソニー|sony`, "6758ソニー", 0.95},
			{`9984|ソフトバンク|softbank`, "9984ソフトバンク", 0.95},
			{`8306|三菱ufj|mufg`, "8306三菱UFJ", 0.9},
			{`4519|中外製薬`, "4519中外製薬", 0.9},
			{`2914|JT|日本たばこ`, "2914JT", 0.9},
			{`9432|NTT`, "9432NTT", 0.9},
			{`9433|KDDI`, "9433KDDI", 0.9},
			{`4063|信越化学`, "4063信越化学", 0.9},
			{`6861|キーエンス`, "6861キーエンス", 0.9},
		},
		Tags: []TagPattern{
			{`配当|利回り|dividend`, TagDividend, 0.8},
			{`成長|グロース|growth`, "成長株", 0.8},
			{`ev|電気自動車|electric`, "EV", 0.9},
			{`決算|業績|earnings`, TagEarnings, 0.8},
			{`リスク|危険|risk`, "リスク管理", 0.7},
			{`長期|ホールド|long.term`, TagLongTerm, 0.7},
			{`短期|デイトレ|short.term`, "短期取引", 0.7},
			{`テクニカル|チャート|technical`, "テクニカル", 0.8},
			{`ファンダメンタル|fundamental`, "ファンダメンタル", 0.8},
			{`reit|不動産`, "REIT", 0.9},
			{`米国|アメリカ|us|usa`, "米国株", 0.8},
			{`競合|比較|competitor`, "競合分析", 0.7},
			{`バリュー|割安|value`, "バリュー投資", 0.8},
			{`新規上場|ipo`, "IPO", 0.9},
			{`優待|株主優待`, "株主優待", 0.9},
		},
		Positive:   `良い|上昇|成長|利益|好調|期待|強い|優秀|安定|買い|ポジティブ|有望|改善|増加|拡大`,
		Negative:   `悪い|下落|減少|損失|不調|心配|弱い|危険|不安定|売り|ネガティブ|懸念|悪化|減退`,
		Risk:       `リスク|危険|不安定|暴落|損失|破綻|倒産|規制|競合激化`,
		Quantity:   `\p{Nd}+[%円ドル]`,
		Metrics:    `per|pbr|roe|eps|売上|利益|配当|成長率`,
		Comparison: `前年|同期|比較|対比|vs`,
		Token:      `[ぁ-んァ-ヶー一-龠a-zA-Z0-9]+`,
		StopWords: []string{
			"の", "は", "が", "を", "に", "で", "と", "から", "まで", "より",
			"について", "として", "という", "する", "した", "している",
			"です", "である", "だと", "思う", "考える", "ある", "いる",
			"この", "その", "どの", "これ", "それ", "あれ",
		},
	}
}
