package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakplan/internal/planner"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Session type colors, one per calendar card kind.
var typeColors = map[planner.SessionType]color.Color{
	planner.TypePart1:  lipgloss.Color("#3B82F6"), // Blue
	planner.TypePart2:  lipgloss.Color("#A855F7"), // Purple
	planner.TypePart3:  lipgloss.Color("#EC4899"), // Pink
	planner.TypeVocab:  lipgloss.Color("#14B8A6"), // Teal
	planner.TypeMock:   lipgloss.Color("#F97316"), // Orange
	planner.TypeReview: lipgloss.Color("#84CC16"), // Lime
}

// TypeColor returns the accent color for a session type.
func TypeColor(t planner.SessionType) color.Color {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return TextDim
}

// TypeBadge styles a session type label.
func TypeBadge(t planner.SessionType) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TypeColor(t)).Bold(true)
}

// StatusStyle styles a session status marker.
func StatusStyle(s planner.Status) lipgloss.Style {
	switch s {
	case planner.StatusCompleted:
		return lipgloss.NewStyle().Foreground(Success)
	case planner.StatusMissed:
		return lipgloss.NewStyle().Foreground(Error).Strikethrough(true)
	}
	return lipgloss.NewStyle().Foreground(Text)
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Today = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)

	TimerLow = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Recording = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
