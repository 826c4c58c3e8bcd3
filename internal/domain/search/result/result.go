package result

import "time"

// Hit is a single query search hit.
type Hit struct {
	notebookID string
	title      string
	subtitle   string
	score      float64
	preview    string
	tags       []string
	updatedAt  time.Time
	entryCount int
}

// NewHit creates a search hit.
func NewHit(
	notebookID, title, subtitle string, score float64, preview string,
	tags []string, updatedAt time.Time, entryCount int,
) Hit {
	return Hit{
		notebookID: notebookID, title: title, subtitle: subtitle,
		score: score, preview: preview, tags: tags,
		updatedAt: updatedAt, entryCount: entryCount,
	}
}

// NotebookID returns the matched notebook identifier.
func (h *Hit) NotebookID() string { return h.notebookID }

// Title returns the notebook title.
func (h *Hit) Title() string { return h.title }

// Subtitle returns the notebook subtitle.
func (h *Hit) Subtitle() string { return h.subtitle }

// Score returns the combined relevance and freshness score.
func (h *Hit) Score() float64 { return h.score }

// Preview returns the context window around the first query match.
func (h *Hit) Preview() string { return h.preview }

// Tags returns the notebook tags.
func (h *Hit) Tags() []string { return h.tags }

// UpdatedAt returns the notebook's last update time.
func (h *Hit) UpdatedAt() time.Time { return h.updatedAt }

// EntryCount returns the number of entries in the notebook.
func (h *Hit) EntryCount() int { return h.entryCount }

// Related is a single related-content recommendation.
type Related struct {
	notebookID string
	title      string
	subtitle   string
	similarity float64
	aspects    []string
	tags       []string
	updatedAt  time.Time
}

// NewRelated creates a related-content recommendation.
func NewRelated(
	notebookID, title, subtitle string, similarity float64,
	aspects, tags []string, updatedAt time.Time,
) Related {
	return Related{
		notebookID: notebookID, title: title, subtitle: subtitle,
		similarity: similarity, aspects: aspects, tags: tags,
		updatedAt: updatedAt,
	}
}

// NotebookID returns the recommended notebook identifier.
func (r *Related) NotebookID() string { return r.notebookID }

// Title returns the notebook title.
func (r *Related) Title() string { return r.title }

// Subtitle returns the notebook subtitle.
func (r *Related) Subtitle() string { return r.subtitle }

// Similarity returns the weighted feature similarity in [0, 1].
func (r *Related) Similarity() float64 { return r.similarity }

// MatchingAspects returns human-readable reasons for the recommendation.
func (r *Related) MatchingAspects() []string { return r.aspects }

// Tags returns the notebook tags.
func (r *Related) Tags() []string { return r.tags }

// UpdatedAt returns the notebook's last update time.
func (r *Related) UpdatedAt() time.Time { return r.updatedAt }
