package analysis

import (
	"time"

	"github.com/kailas-cloud/kabunote/internal/domain/classification"
)

// EntrySnapshot is the stored analysis of a single entry.
type EntrySnapshot struct {
	EntryID     string                     `json:"entry_id"`
	Sentiment   Sentiment                  `json:"sentiment"`
	ContentType classification.ContentType `json:"content_type"`
	Score       int                        `json:"analysis_score"`
}

// Snapshot is the persisted analysis of a whole notebook, refreshed by batch re-analysis.
type Snapshot struct {
	NotebookID string                  `json:"notebook_id"`
	Result     Result                  `json:"analysis"`
	Score      int                     `json:"analysis_score"`
	Strategy   classification.Strategy `json:"investment_strategy"`
	AnalyzedAt time.Time               `json:"last_analyzed"`
	Entries    []EntrySnapshot         `json:"entries"`
}
