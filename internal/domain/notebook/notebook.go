package notebook

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Field length limits (in runes).
const (
	MaxTitleLength       = 200
	MaxSubtitleLength    = 300
	MaxStockCodeLength   = 10
	MaxCompanyNameLength = 100
	MaxTagLength         = 100
)

// Attrs holds the user-editable notebook fields.
type Attrs struct {
	Title          string
	Subtitle       string
	StockCode      string
	CompanyName    string
	InvestmentGoal string
	RiskFactors    string
	Tags           []string
}

// Notebook is a per-ticker analysis notebook (immutable value object).
type Notebook struct {
	id        string
	owner     string
	attrs     Attrs
	entries   []Entry
	createdAt time.Time
	updatedAt time.Time
}

// New validates and creates a Notebook without entries.
func New(id, owner string, a Attrs, now time.Time) (Notebook, error) {
	if id == "" {
		return Notebook{}, fmt.Errorf("notebook ID is required")
	}
	if owner == "" {
		return Notebook{}, fmt.Errorf("owner is required")
	}
	a, err := normalizeAttrs(a)
	if err != nil {
		return Notebook{}, err
	}
	return Notebook{id: id, owner: owner, attrs: a, createdAt: now, updatedAt: now}, nil
}

// Reconstruct creates a Notebook without validation (storage hydration, test fixtures).
func Reconstruct(id, owner string, a Attrs, entries []Entry, createdAt, updatedAt time.Time) Notebook {
	return Notebook{
		id: id, owner: owner, attrs: a, entries: entries,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

func normalizeAttrs(a Attrs) (Attrs, error) {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return Attrs{}, fmt.Errorf("title is required")
	}
	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"title", a.Title, MaxTitleLength},
		{"subtitle", a.Subtitle, MaxSubtitleLength},
		{"stock code", a.StockCode, MaxStockCodeLength},
		{"company name", a.CompanyName, MaxCompanyNameLength},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return Attrs{}, fmt.Errorf("%s too long (max %d chars)", l.name, l.max)
		}
	}
	tags, err := NormalizeTags(a.Tags)
	if err != nil {
		return Attrs{}, err
	}
	a.Tags = tags
	return a, nil
}

// NormalizeTags trims tag names, drops empty ones and removes duplicates (first wins).
func NormalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if utf8.RuneCountInString(t) > MaxTagLength {
			return nil, fmt.Errorf("tag %q too long (max %d chars)", t, MaxTagLength)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// ID returns the notebook identifier.
func (n *Notebook) ID() string { return n.id }

// Owner returns the owning user.
func (n *Notebook) Owner() string { return n.owner }

// Title returns the notebook title.
func (n *Notebook) Title() string { return n.attrs.Title }

// Subtitle returns the notebook subtitle.
func (n *Notebook) Subtitle() string { return n.attrs.Subtitle }

// StockCode returns the ticker code.
func (n *Notebook) StockCode() string { return n.attrs.StockCode }

// CompanyName returns the issuer name.
func (n *Notebook) CompanyName() string { return n.attrs.CompanyName }

// InvestmentGoal returns the free-text goal statement.
func (n *Notebook) InvestmentGoal() string { return n.attrs.InvestmentGoal }

// RiskFactors returns the free-text risk statement.
func (n *Notebook) RiskFactors() string { return n.attrs.RiskFactors }

// Tags returns the notebook tag names.
func (n *Notebook) Tags() []string { return n.attrs.Tags }

// Attrs returns a copy of the editable fields.
func (n *Notebook) Attrs() Attrs {
	a := n.attrs
	a.Tags = append([]string(nil), n.attrs.Tags...)
	return a
}

// Entries returns the notebook entries in stored order.
func (n *Notebook) Entries() []Entry { return n.entries }

// EntryCount returns the number of entries.
func (n *Notebook) EntryCount() int { return len(n.entries) }

// CreatedAt returns the creation time.
func (n *Notebook) CreatedAt() time.Time { return n.createdAt }

// UpdatedAt returns the last modification time.
func (n *Notebook) UpdatedAt() time.Time { return n.updatedAt }

// WithEntry returns a copy with e appended and the modification time moved to now.
func (n *Notebook) WithEntry(e Entry, now time.Time) Notebook {
	entries := make([]Entry, 0, len(n.entries)+1)
	entries = append(entries, n.entries...)
	entries = append(entries, e)
	return Notebook{
		id: n.id, owner: n.owner, attrs: n.attrs, entries: entries,
		createdAt: n.createdAt, updatedAt: now,
	}
}

// RecentEntries returns up to limit entries, newest first.
// Entries with equal timestamps keep their stored order.
func (n *Notebook) RecentEntries(limit int) []Entry {
	sorted := append([]Entry(nil), n.entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].createdAt.After(sorted[j].createdAt)
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
