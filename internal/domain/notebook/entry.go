package notebook

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// EntryType classifies what an entry records.
type EntryType string

// Entry type constants.
const (
	EntryAnalysis    EntryType = "analysis"
	EntryEarnings    EntryType = "earnings"
	EntryNews        EntryType = "news"
	EntryCalculation EntryType = "calculation"
	EntryMemo        EntryType = "memo"
)

// IsValid checks if the entry type is one of the supported values.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryAnalysis, EntryEarnings, EntryNews, EntryCalculation, EntryMemo:
		return true
	}
	return false
}

// MaxEntryContentSize is the maximum entry body size in bytes.
const MaxEntryContentSize = 65536

// Entry is a dated note within a notebook.
type Entry struct {
	id        string
	entryType EntryType
	title     string
	content   string
	tags      []string
	createdAt time.Time
}

// NewEntry validates and creates an Entry. An empty type defaults to memo.
func NewEntry(id string, t EntryType, title, content string, tags []string, now time.Time) (Entry, error) {
	if id == "" {
		return Entry{}, fmt.Errorf("entry ID is required")
	}
	if t == "" {
		t = EntryMemo
	}
	if !t.IsValid() {
		return Entry{}, fmt.Errorf("invalid entry type: %q", t)
	}
	if strings.TrimSpace(content) == "" {
		return Entry{}, fmt.Errorf("content is required")
	}
	if len(content) > MaxEntryContentSize {
		return Entry{}, fmt.Errorf("content too large (max %d bytes)", MaxEntryContentSize)
	}
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return Entry{}, fmt.Errorf("entry title too long (max %d chars)", MaxTitleLength)
	}
	normTags, err := NormalizeTags(tags)
	if err != nil {
		return Entry{}, err
	}
	return Entry{id: id, entryType: t, title: title, content: content, tags: normTags, createdAt: now}, nil
}

// ReconstructEntry creates an Entry without validation (storage hydration).
func ReconstructEntry(id string, t EntryType, title, content string, tags []string, createdAt time.Time) Entry {
	return Entry{id: id, entryType: t, title: title, content: content, tags: tags, createdAt: createdAt}
}

// ID returns the entry identifier.
func (e *Entry) ID() string { return e.id }

// Type returns the entry type.
func (e *Entry) Type() EntryType { return e.entryType }

// Title returns the entry title (may be empty).
func (e *Entry) Title() string { return e.title }

// Content returns the entry body.
func (e *Entry) Content() string { return e.content }

// Tags returns the entry tag names.
func (e *Entry) Tags() []string { return e.tags }

// CreatedAt returns the creation time.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
