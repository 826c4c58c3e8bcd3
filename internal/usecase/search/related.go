package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/kabunote/internal/domain/analysis"
	"github.com/kailas-cloud/kabunote/internal/domain/feature"
	"github.com/kailas-cloud/kabunote/internal/domain/notebook"
	"github.com/kailas-cloud/kabunote/internal/domain/search/result"
)

// Similarity weights and thresholds.
const (
	tagWeight      = 0.3
	keywordWeight  = 0.2
	styleWeight    = 0.3
	industryWeight = 0.2

	similarityKeywords = 5
	minSimilarity      = 0.1
	maxAspectTags      = 3
)

// Features builds the comparison profile of a notebook.
func (e *Engine) Features(nb notebook.Notebook) feature.Vector {
	text := FullText(nb)
	res := e.analyzer.Analyze(text, nb.Title())
	lt := lower(text)
	tags := nb.Tags()

	return feature.Vector{
		Tags:          tags,
		Sentiment:     res.Sentiment,
		SuggestedTags: res.SuggestedTags,
		Keywords:      res.Keywords,
		Industries:    matchConcepts(e.folded.Industries, lt, tags, true),
		Styles:        matchConcepts(e.folded.Styles, lt, tags, false),
		StockMentions: res.StockMentions,
		EntryCount:    nb.EntryCount(),
	}
}

// matchConcepts returns the keys of concepts whose phrases occur in text or
// whose key occurs in a tag. withKey also matches the key itself in text.
func matchConcepts(concepts []Concept, text string, tags []string, withKey bool) []string {
	var out []string
	for _, c := range concepts {
		key := lower(c.Key)
		if (withKey && strings.Contains(text, key)) || containsAny(text, c.Phrases) || keyInTags(key, tags) {
			out = append(out, c.Key)
		}
	}
	return out
}

func keyInTags(key string, tags []string) bool {
	for _, t := range tags {
		if strings.Contains(lower(t), key) {
			return true
		}
	}
	return false
}

// Similarity is the weighted Jaccard overlap of two profiles, in [0, 1].
func Similarity(a, b feature.Vector) float64 {
	return tagWeight*feature.Jaccard(a.Tags, b.Tags) +
		keywordWeight*feature.Jaccard(a.TopKeywords(similarityKeywords), b.TopKeywords(similarityKeywords)) +
		styleWeight*feature.Jaccard(a.Styles, b.Styles) +
		industryWeight*feature.Jaccard(a.Industries, b.Industries)
}

// MatchingAspects describes what two profiles have in common.
func MatchingAspects(a, b feature.Vector) []string {
	var out []string
	if common := feature.Intersect(a.Tags, b.Tags); len(common) > 0 {
		if len(common) > maxAspectTags {
			common = common[:maxAspectTags]
		}
		out = append(out, "共通タグ: "+strings.Join(common, ", "))
	}
	if common := feature.Intersect(a.Industries, b.Industries); len(common) > 0 {
		out = append(out, "同業界: "+strings.Join(common, ", "))
	}
	if common := feature.Intersect(a.Styles, b.Styles); len(common) > 0 {
		out = append(out, "投資スタイル: "+strings.Join(common, ", "))
	}
	if a.Sentiment == b.Sentiment && a.Sentiment != analysis.Neutral && a.Sentiment != "" {
		out = append(out, fmt.Sprintf("センチメント: %s", a.Sentiment))
	}
	return out
}

type scoredRelated struct {
	related result.Related
	score   float64
}

// Related ranks the notebooks of corpus by similarity to target. The target
// itself is excluded; candidates at or below 0.1 are dropped. A limit <= 0
// returns every candidate above the threshold.
func (e *Engine) Related(target notebook.Notebook, corpus []notebook.Notebook, limit int) []result.Related {
	tf := e.Features(target)

	var scored []scoredRelated
	for _, nb := range corpus {
		if nb.ID() == target.ID() {
			continue
		}
		cf := e.Features(nb)
		sim := Similarity(tf, cf)
		if sim <= minSimilarity {
			continue
		}
		scored = append(scored, scoredRelated{
			score: sim,
			related: result.NewRelated(
				nb.ID(), nb.Title(), nb.Subtitle(), sim,
				MatchingAspects(tf, cf), nb.Tags(), nb.UpdatedAt(),
			),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]result.Related, len(scored))
	for i, s := range scored {
		out[i] = s.related
	}
	return out
}
