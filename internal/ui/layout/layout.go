package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakplan/internal/ui/theme"
)

const (
	// DefaultWidth is used when the terminal width is unknown.
	DefaultWidth = 80
	MinWidth     = 60
)

// Painter applies a style when output is styled and returns the text
// unchanged otherwise, so piped output stays free of escape codes.
type Painter bool

// Paint renders text with s when p is true.
func (p Painter) Paint(s lipgloss.Style, text string) string {
	if !p {
		return text
	}
	return s.Render(text)
}

// ClampWidth bounds a terminal width to something the calendar fits in.
func ClampWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	if width < MinWidth {
		return MinWidth
	}
	return width
}

// RenderHeader renders a title on the left and a right-aligned detail
// line, padded to width.
func RenderHeader(p Painter, title, detail string, width int) string {
	left := p.Paint(theme.Title, title)
	right := p.Paint(theme.Subtitle, detail)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// Rule renders a horizontal divider.
func Rule(p Painter, width int) string {
	return p.Paint(theme.Subtitle, strings.Repeat("─", width))
}
