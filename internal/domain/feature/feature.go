package feature

import "github.com/kailas-cloud/kabunote/internal/domain/analysis"

// Vector is the comparison profile of one notebook. It is computed on demand and never stored.
type Vector struct {
	Tags          []string           `json:"tags"`
	Sentiment     analysis.Sentiment `json:"sentiment"`
	SuggestedTags []string           `json:"suggested_tags"`
	Keywords      []string           `json:"keywords"`
	Industries    []string           `json:"industry_features"`
	Styles        []string           `json:"investment_style"`
	StockMentions []string           `json:"stock_mentions"`
	EntryCount    int                `json:"entry_count"`
}

// TopKeywords returns at most n leading keywords.
func (v *Vector) TopKeywords(n int) []string {
	if len(v.Keywords) <= n {
		return v.Keywords
	}
	return v.Keywords[:n]
}

// Jaccard returns |a ∩ b| / |a ∪ b| over the distinct elements of a and b.
// Two empty sets yield 0.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	union := len(setA)
	inter := 0
	for k := range setB {
		if _, ok := setA[k]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Intersect returns the elements of a that also appear in b, in a's order, without duplicates.
func Intersect(a, b []string) []string {
	setB := toSet(b)
	seen := make(map[string]struct{}, len(a))
	var out []string
	for _, s := range a {
		if _, ok := setB[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[s] = struct{}{}
	}
	return m
}
