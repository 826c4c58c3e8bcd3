// Package search ranks an owner's notebooks against a query and recommends
// related notebooks by feature similarity.
package search

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kailas-cloud/kabunote/internal/domain/notebook"
	"github.com/kailas-cloud/kabunote/internal/domain/search/request"
	"github.com/kailas-cloud/kabunote/internal/domain/search/result"
)

// Scoring constants.
const (
	fullTextEntries = 10
	exactWeight     = 2
	relevanceWeight = 0.7
	freshnessWeight = 0.3
	previewRadius   = 50
	previewHead     = 100
)

// Engine is a pure, in-memory search and similarity engine. Safe for concurrent use.
type Engine struct {
	analyzer Analyzer
	// dict is matched as written against normalized queries, so upper-case
	// phrases such as "EV" or "PER" never expand a query.
	dict Dictionaries
	// folded is dict lower-cased, for profiling lower-cased notebook text.
	folded Dictionaries
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for freshness scoring.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithDictionaries replaces the built-in dictionaries.
func WithDictionaries(d Dictionaries) Option {
	return func(e *Engine) { e.dict = d }
}

// NewEngine creates an engine that extracts features with analyzer.
func NewEngine(analyzer Analyzer, opts ...Option) *Engine {
	e := &Engine{analyzer: analyzer, dict: DefaultDictionaries(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	e.folded = e.dict.lowered()
	return e
}

type scoredHit struct {
	hit   result.Hit
	score float64
}

// Search ranks the notebooks of corpus matching query. A limit <= 0 returns every match.
// A query shorter than request.MinQueryLength characters, or one made only of
// punctuation, yields no results.
func (e *Engine) Search(query string, corpus []notebook.Notebook, limit int) []result.Hit {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < request.MinQueryLength {
		return []result.Hit{}
	}
	normalized := Normalize(query)
	if normalized == "" {
		return []result.Hit{}
	}
	keywords := e.Expand(normalized)
	now := e.now()

	var scored []scoredHit
	for _, nb := range Candidates(corpus, keywords) {
		text := FullText(nb)
		score := relevanceWeight*Relevance(text, normalized, keywords) +
			freshnessWeight*Freshness(nb.UpdatedAt(), now)
		scored = append(scored, scoredHit{
			score: score,
			hit: result.NewHit(
				nb.ID(), nb.Title(), nb.Subtitle(), score, Preview(text, normalized),
				nb.Tags(), nb.UpdatedAt(), nb.EntryCount(),
			),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	hits := make([]result.Hit, len(scored))
	for i, s := range scored {
		hits[i] = s.hit
	}
	return hits
}

// Candidates returns the notebooks in which any lower-cased keyword occurs, in corpus order,
// each at most once.
func Candidates(corpus []notebook.Notebook, keywords []string) []notebook.Notebook {
	var out []notebook.Notebook
	seen := make(map[string]struct{}, len(corpus))
	for _, nb := range corpus {
		if _, dup := seen[nb.ID()]; dup {
			continue
		}
		if matches(nb, keywords) {
			seen[nb.ID()] = struct{}{}
			out = append(out, nb)
		}
	}
	return out
}

func matches(nb notebook.Notebook, keywords []string) bool {
	fields := []string{
		nb.Title(), nb.Subtitle(), nb.CompanyName(), nb.StockCode(),
		nb.InvestmentGoal(), nb.RiskFactors(),
	}
	fields = append(fields, nb.Tags()...)
	for _, en := range nb.Entries() {
		fields = append(fields, en.Title(), en.Content())
		fields = append(fields, en.Tags()...)
	}
	for _, f := range fields {
		if f != "" && containsAny(lower(f), keywords) {
			return true
		}
	}
	return false
}

// FullText joins the non-empty descriptive fields of nb and its ten most
// recent entries with single spaces.
func FullText(nb notebook.Notebook) string {
	parts := []string{nb.Title(), nb.Subtitle(), nb.CompanyName(), nb.InvestmentGoal(), nb.RiskFactors()}
	for _, en := range nb.RecentEntries(fullTextEntries) {
		parts = append(parts, en.Title(), en.Content())
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// Relevance scores keyword density per thousand characters, capped at 1.
// Occurrences of the whole query count double.
func Relevance(text, query string, keywords []string) float64 {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	lt := lower(text)
	hits := 0
	if query != "" {
		hits += exactWeight * strings.Count(lt, lower(query))
	}
	for _, k := range keywords {
		if k != "" {
			hits += strings.Count(lt, lower(k))
		}
	}
	return math.Min(float64(hits)/(float64(n)/1000), 1)
}

// Freshness scores how recently a notebook was updated.
func Freshness(updatedAt, now time.Time) float64 {
	days := math.Floor(now.Sub(updatedAt).Hours() / 24)
	switch {
	case days <= 7:
		return 1.0
	case days <= 30:
		return 0.8
	case days <= 90:
		return 0.5
	default:
		return 0.2
	}
}

// Preview returns up to 50 characters either side of the first query match,
// or the first 100 characters when the query does not occur.
func Preview(text, query string) string {
	runes := []rune(text)
	lowered := []rune(lower(text))
	q := []rune(lower(query))

	if idx := runeIndex(lowered, q); len(q) > 0 && idx >= 0 && len(lowered) == len(runes) {
		start := max(0, idx-previewRadius)
		end := min(len(runes), idx+len(q)+previewRadius)
		p := strings.TrimSpace(string(runes[start:end]))
		if start > 0 || end < len(runes) {
			return "..." + p + "..."
		}
		return p
	}
	if len(runes) > previewHead {
		return string(runes[:previewHead]) + "..."
	}
	return text
}

func runeIndex(s, sub []rune) int {
	if len(sub) == 0 {
		return -1
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
