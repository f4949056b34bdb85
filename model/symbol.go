package model

// Symbol is one decoded optical code: the character it represents and
// where it sits on the page.
type Symbol struct {
	// Text is the decoded payload, normally a single code point. It may be
	// the paragraph marker character.
	Text string

	// Position is the symbol's representative point, typically the centroid
	// of its detected polygon.
	Position Point

	// Width and Height approximate the symbol's size on the rendered page.
	// Height drives the row clustering tolerance, so it scales with the
	// render zoom factor.
	Width  float64
	Height float64

	// Page is the zero-based index of the page the symbol belongs to.
	Page int
}

// IsDegenerate returns true if the symbol carries no usable extent.
// Such symbols come from malformed detector polygons and are dropped
// during clustering.
func (s Symbol) IsDegenerate() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Row is a cluster of symbols judged to lie on the same visual line.
type Row struct {
	// Symbols are the row members. After ordering they are sorted by
	// ascending Position.X.
	Symbols []Symbol

	// YCenter is the mean Position.Y of the members, used to order rows
	// relative to each other.
	YCenter float64
}

// Count returns the number of symbols in the row.
func (r Row) Count() int {
	return len(r.Symbols)
}

// PageText is the recovered text of a single page.
type PageText struct {
	// Index is the zero-based page index.
	Index int

	// Text is the page's recovered text. Empty for pages with no embedded
	// text layer and no detectable symbols.
	Text string

	// Embedded is true when Text came from the page's native text layer
	// rather than the visual path.
	Embedded bool
}
