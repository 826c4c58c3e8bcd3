package request

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Search parameter limits.
const (
	// MinQueryLength is the minimum query length in characters.
	MinQueryLength = 2
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength      = 4096
	DefaultLimit        = 20
	MaxLimit            = 100
	DefaultRelatedLimit = 5
	MaxRelatedLimit     = 50
)

// Request is a validated query search.
type Request struct {
	query string
	limit int
}

// New validates and normalizes search parameters.
// Defaults: limit=20, clamped to MaxLimit.
func New(query string, limit int) (Request, error) {
	query = strings.TrimSpace(query)
	n := utf8.RuneCountInString(query)
	if n < MinQueryLength {
		return Request{}, fmt.Errorf("query must be at least %d characters", MinQueryLength)
	}
	if n > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	return Request{query: query, limit: SearchLimit(limit)}, nil
}

// SearchLimit normalizes the query search limit.
func SearchLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// RelatedLimit normalizes the related-content limit.
func RelatedLimit(limit int) int {
	if limit <= 0 {
		return DefaultRelatedLimit
	}
	if limit > MaxRelatedLimit {
		return MaxRelatedLimit
	}
	return limit
}
