// Package textutil provides text shaping helpers for previews and reports.
package textutil

import (
	"fmt"
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated previews.
const Ellipsis = "..."

// CollapseWhitespace replaces runs of whitespace with a single space and
// trims the result. Log previews should never span multiple lines.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateWidth cuts s so its display width does not exceed maxWidth,
// breaking at a word boundary when possible. Width is measured in
// terminal cells, so CJK text truncates correctly.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	budget := maxWidth - runewidth.StringWidth(Ellipsis)
	if budget <= 0 {
		return Ellipsis
	}

	var b strings.Builder

	width := 0

	tokens := words.FromString(s)
	for tokens.Next() {
		token := tokens.Value()

		tokenWidth := runewidth.StringWidth(token)
		if width+tokenWidth > budget {
			break
		}

		b.WriteString(token)
		width += tokenWidth
	}

	out := strings.TrimRight(b.String(), " ")
	if out == "" {
		// First word alone is wider than the budget; fall back to a
		// cell-accurate cut inside the word.
		out = runewidth.Truncate(s, budget, "")
	}

	return out + Ellipsis
}

// Preview renders an arbitrary value as a single-line string bounded by
// maxWidth display cells.
func Preview(v any, maxWidth int) string {
	s, ok := v.(string)
	if !ok {
		return TruncateWidth(CollapseWhitespace(stringify(v)), maxWidth)
	}

	return TruncateWidth(CollapseWhitespace(s), maxWidth)
}

func stringify(v any) string {
	if v == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%v", v)
}
