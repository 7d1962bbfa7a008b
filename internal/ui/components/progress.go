package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakplan/internal/ui/layout"
	"github.com/abhisek/speakplan/internal/ui/theme"
)

const (
	filledCell = "█"
	emptyCell  = "░"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0.0-1.0
	ShowPercent bool
	Width       int
	Styled      bool
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Styled:      true,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += p.paint(theme.Body, p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += p.paint(theme.ProgressFilled, strings.Repeat(filledCell, filled)) +
		p.paint(theme.ProgressEmpty, strings.Repeat(emptyCell, empty))

	if p.ShowPercent {
		result += p.paint(theme.Subtitle, fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

func (p ProgressBar) paint(s lipgloss.Style, text string) string {
	return layout.Painter(p.Styled).Paint(s, text)
}
