package search

// Concept is a dictionary key with its related phrases.
type Concept struct {
	Key     string
	Phrases []string
}

// Dictionaries holds the immutable lookup tables of an Engine.
type Dictionaries struct {
	// Synonyms expand queries into related investment concepts.
	Synonyms []Concept
	// Industries expand queries and label notebooks by sector.
	Industries []Concept
	// Styles label notebooks by investment style.
	Styles []Concept
}

// DefaultDictionaries returns the built-in Japanese equity dictionaries.
func DefaultDictionaries() Dictionaries {
	return Dictionaries{
		Synonyms: []Concept{
			{"高配当", []string{"配当", "利回り", "dividend", "分配金", "インカムゲイン"}},
			{"成長株", []string{"成長", "グロース", "拡大", "売上増", "利益増", "growth"}},
			{"割安株", []string{"バリュー", "割安", "PER", "PBR", "割り負け", "value"}},
			{"長期投資", []string{"長期", "ホールド", "保有", "継続", "long term"}},
			{"短期取引", []string{"短期", "トレード", "デイトレ", "スイング", "short term"}},
			{"決算分析", []string{"決算", "業績", "earnings", "売上", "利益", "四半期"}},
			{"テクニカル", []string{"チャート", "technical", "ローソク足", "移動平均", "RSI"}},
			{"ファンダメンタル", []string{"fundamental", "ROE", "ROA", "財務", "バランスシート"}},
			{"リスク管理", []string{"リスク", "risk", "危険", "注意", "懸念", "リスクヘッジ"}},
		},
		Industries: []Concept{
			{"自動車", []string{"車", "automotive", "EV", "電気自動車", "トヨタ", "ホンダ"}},
			{"IT", []string{"テクノロジー", "tech", "ソフトウェア", "AI", "クラウド", "DX"}},
			{"金融", []string{"銀行", "bank", "証券", "保険", "フィンテック", "投資"}},
			{"不動産", []string{"REIT", "不動産", "real estate", "マンション", "オフィス"}},
			{"製造業", []string{"製造", "manufacturing", "工場", "生産", "素材", "部品"}},
			{"小売", []string{"retail", "小売", "販売", "店舗", "EC", "eコマース"}},
			{"エネルギー", []string{"energy", "エネルギー", "電力", "ガス", "再生可能"}},
			{"ヘルスケア", []string{"healthcare", "医療", "製薬", "バイオ", "病院"}},
		},
		Styles: []Concept{
			{"高配当投資", []string{"配当", "利回り", "dividend"}},
			{"成長投資", []string{"成長", "グロース", "growth"}},
			{"バリュー投資", []string{"バリュー", "割安", "value"}},
			{"長期投資", []string{"長期", "ホールド", "long"}},
			{"短期投資", []string{"短期", "トレード", "short"}},
		},
	}
}

// lowered returns a copy with every key and phrase lower-cased.
func (d Dictionaries) lowered() Dictionaries {
	return Dictionaries{
		Synonyms:   lowerConcepts(d.Synonyms),
		Industries: lowerConcepts(d.Industries),
		Styles:     lowerConcepts(d.Styles),
	}
}

func lowerConcepts(in []Concept) []Concept {
	out := make([]Concept, len(in))
	for i, c := range in {
		out[i] = Concept{Key: c.Key, Phrases: make([]string, len(c.Phrases))}
		for j, p := range c.Phrases {
			out[i].Phrases[j] = lower(p)
		}
	}
	return out
}
