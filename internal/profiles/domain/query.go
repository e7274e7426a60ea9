package domain

import "strings"

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ListQuery narrows a list of profiles or feed items.
type ListQuery struct {
	// Search is free text; see SearchTerms.
	Search string
	// OwnerID filters feed items by owner. Ignored for profiles.
	OwnerID string
	Limit   int
	Offset  int
}

// Normalized clamps Limit and Offset into range.
func (q ListQuery) Normalized() ListQuery {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultListLimit
	case q.Limit > MaxListLimit:
		q.Limit = MaxListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Search = strings.TrimSpace(q.Search)
	q.OwnerID = strings.TrimSpace(q.OwnerID)
	return q
}

// SearchTerms splits Search on whitespace and commas. Every term has to match
// for a row to be returned.
func (q ListQuery) SearchTerms() []string {
	return strings.FieldsFunc(q.Search, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
