// internal/catalog/catalog.go
//
// Search / filter / paginate engine over the Lexicon.
//
// A View derives a visible slice from (query, category, display limit):
//   filtered = entries matching the query (term or translation, case and accent
//              insensitive; empty query matches all) AND the category rules.
//   visible  = first displayLimit entries of filtered, in lexicon order.
//
// Changing the query or the category resets the limit to PageSize. LoadMore is the
// "reached the end of the list" signal from the scrolling client and grows the limit
// by PageSize, capped at the filtered length.

package catalog

import (
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/lexique/internal/lexicon"
	"github.com/robalobadob/lexique/internal/textnorm"
)

// PageSize is the initial display limit and the growth step.
const PageSize = 50

// MatchQuery reports whether the entry's term or translation contains q.
func MatchQuery(e lexicon.Entry, q string) bool {
	if q == "" {
		return true
	}
	needle := textnorm.FoldLower(q)
	return strings.Contains(textnorm.FoldLower(e.Term), needle) ||
		strings.Contains(textnorm.FoldLower(e.Translation), needle)
}

// Filter returns the entries matching query and category, in lexicon order.
func Filter(lex *lexicon.Lexicon, query, category string) []lexicon.Entry {
	return lo.Filter(lex.All(), func(e lexicon.Entry, _ int) bool {
		return MatchQuery(e, query) && MatchCategory(e.PartOfSpeech, category)
	})
}

// PageResult is a stateless page of filtered entries.
type PageResult struct {
	Items     []lexicon.Entry `json:"items"`
	Total     int             `json:"total"`
	Limit     int             `json:"limit"`
	HasMore   bool            `json:"hasMore"`
	NextLimit int             `json:"nextLimit"`
}

// Page returns the first limit filtered entries. A non-positive limit means PageSize.
func Page(lex *lexicon.Lexicon, query, category string, limit int) PageResult {
	if limit <= 0 {
		limit = PageSize
	}
	filtered := Filter(lex, query, category)
	visible := filtered
	if limit < len(filtered) {
		visible = filtered[:limit]
	}
	return PageResult{
		Items:     visible,
		Total:     len(filtered),
		Limit:     limit,
		HasMore:   len(visible) < len(filtered),
		NextLimit: grow(limit, len(filtered)),
	}
}

// grow returns the next display limit: limit+PageSize capped at total,
// never shrinking below the current limit.
func grow(limit, total int) int {
	next := limit + PageSize
	if next > total {
		next = total
	}
	if next < limit {
		return limit
	}
	return next
}

// View is the stateful form of the engine held by one list screen.
// It is not safe for concurrent use.
type View struct {
	lex      *lexicon.Lexicon
	query    string
	category string
	limit    int
	filtered []lexicon.Entry
}

// NewView returns a view over lex with an empty query, all categories and PageSize limit.
func NewView(lex *lexicon.Lexicon) *View {
	v := &View{lex: lex, limit: PageSize}
	v.refilter()
	return v
}

func (v *View) refilter() {
	v.filtered = Filter(v.lex, v.query, v.category)
}

// SetQuery changes the free-text query and resets the display limit.
func (v *View) SetQuery(q string) {
	if q == v.query {
		return
	}
	v.query = q
	v.limit = PageSize
	v.refilter()
}

// SetCategory changes the category selector and resets the display limit.
func (v *View) SetCategory(c string) {
	if c == v.category {
		return
	}
	v.category = c
	v.limit = PageSize
	v.refilter()
}

// LoadMore grows the display limit by one page, capped at the filtered length.
// It reports whether anything new became visible.
func (v *View) LoadMore() bool {
	if !v.HasMore() {
		return false
	}
	v.limit = grow(v.limit, len(v.filtered))
	return true
}

// Visible returns the currently displayed entries.
func (v *View) Visible() []lexicon.Entry {
	if v.limit >= len(v.filtered) {
		return v.filtered
	}
	return v.filtered[:v.limit]
}

// Total returns the number of filtered entries.
func (v *View) Total() int { return len(v.filtered) }

// Limit returns the current display limit.
func (v *View) Limit() int { return v.limit }

// HasMore reports whether filtered entries remain beyond the visible slice.
func (v *View) HasMore() bool { return v.limit < len(v.filtered) }

// Query returns the current query.
func (v *View) Query() string { return v.query }

// Category returns the current category.
func (v *View) Category() string { return v.category }

// Snapshot returns the visible page in the same shape as Page.
func (v *View) Snapshot() PageResult {
	return PageResult{
		Items:     v.Visible(),
		Total:     len(v.filtered),
		Limit:     v.limit,
		HasMore:   v.HasMore(),
		NextLimit: grow(v.limit, len(v.filtered)),
	}
}
