package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/CrestNiraj12/terminalfeed/domain"
)

// Matcher performs case-insensitive substring matching over a post's
// title and author.
type Matcher struct {
	folded string
}

// NewMatcher prepares query for matching. Surrounding whitespace is ignored.
func NewMatcher(query string) Matcher {
	return Matcher{folded: fold(strings.TrimSpace(query))}
}

// Empty reports whether the matcher accepts everything.
func (m Matcher) Empty() bool {
	return m.folded == ""
}

// Match reports whether p contains the query in its title or author.
func (m Matcher) Match(p domain.Post) bool {
	if m.Empty() {
		return true
	}
	return strings.Contains(fold(p.Title), m.folded) ||
		strings.Contains(fold(p.Author), m.folded)
}

// Filter returns the posts matching query, in their original order. The
// input slice is never modified; the result is always a fresh slice.
func Filter(posts []domain.Post, query string) []domain.Post {
	m := NewMatcher(query)
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if m.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// A Caser keeps state between calls, so each fold gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
