// Package calendar renders a study plan for the terminal.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakplan/internal/planner"
	"github.com/abhisek/speakplan/internal/ui/components"
	"github.com/abhisek/speakplan/internal/ui/layout"
	"github.com/abhisek/speakplan/internal/ui/theme"
)

const (
	minColumn     = 9
	noSession     = "·"
	upcomingCount = 5
)

// Renderer draws plans. The zero value renders plain text at the default width.
type Renderer struct {
	Width  int
	Styled bool
	Now    time.Time // highlights today; zero disables the highlight
}

func (r Renderer) painter() layout.Painter { return layout.Painter(r.Styled) }

func (r Renderer) width() int { return layout.ClampWidth(r.Width) }

// Plan renders the full overview: header, week grid, upcoming sessions and
// progress.
func (r Renderer) Plan(a planner.Availability, plan *planner.StudyPlan) string {
	w := r.width()
	p := r.painter()

	days := make([]string, len(a.Days))
	for i, d := range a.Days {
		days[i] = d.Short()
	}
	detail := fmt.Sprintf("Band %.1f · %d min · %s", a.TargetBand, a.DurationMinutes, strings.Join(days, " "))

	var b strings.Builder
	b.WriteString(layout.RenderHeader(p, "Speaking plan", detail, w))
	b.WriteString("\n")
	b.WriteString(p.Paint(theme.Subtitle, fmt.Sprintf("%s - %s, %d sessions",
		plan.StartDate.Format("Mon Jan 2"), plan.EndDate.Format("Mon Jan 2"), len(plan.Sessions))))
	b.WriteString("\n")
	b.WriteString(layout.Rule(p, w))
	b.WriteString("\n\n")
	b.WriteString(r.Weeks(plan))
	b.WriteString("\n")
	b.WriteString(r.Legend())
	b.WriteString("\n\n")

	from := plan.StartDate
	if !r.Now.IsZero() {
		from = r.Now
	}
	b.WriteString(p.Paint(theme.Title, "Upcoming"))
	b.WriteString("\n")
	b.WriteString(r.Upcoming(plan.Upcoming(from, upcomingCount)))
	b.WriteString("\n")
	b.WriteString(r.Progress(plan.Progress()))
	return b.String()
}

// Weeks renders one block per Monday-start week with a column per weekday.
func (r Renderer) Weeks(plan *planner.StudyPlan) string {
	p := r.painter()
	col := r.width() / 7
	if col < minColumn {
		col = minColumn
	}

	first := planner.StartOfDay(plan.StartDate)
	last := planner.StartOfDay(plan.EndDate)

	var b strings.Builder
	for i, wk := range plan.Weeks() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Paint(theme.Subtitle, "Week of "+wk.Start.Format("Jan 2")))
		b.WriteString("\n")

		var heads, cells []string
		for d, sess := range wk.Days {
			date := wk.Start.AddDate(0, 0, d)
			head := fmt.Sprintf("%s %02d", planner.AllDays[d].Short(), date.Day())
			headStyle := theme.Subtitle
			if !r.Now.IsZero() && planner.SameDay(date, r.Now) {
				head += "*"
				headStyle = theme.Today
			}
			heads = append(heads, p.Paint(headStyle, pad(head, col)))

			var cell string
			var style lipgloss.Style
			switch {
			case sess != nil:
				cell = truncate(sess.Type.Label(), col-1)
				style = theme.TypeBadge(sess.Type)
				if sess.Status != planner.StatusPending {
					cell = truncate(statusMark(sess.Status)+" "+sess.Type.Label(), col-1)
					style = theme.StatusStyle(sess.Status)
				}
			case date.Before(first) || date.After(last):
				cell = ""
				style = theme.Body
			default:
				cell = noSession
				style = theme.Hint
			}
			cells = append(cells, p.Paint(style, pad(cell, col)))
		}
		b.WriteString(strings.TrimRight(strings.Join(heads, ""), " "))
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(strings.Join(cells, ""), " "))
		b.WriteString("\n")
	}
	return b.String()
}

// Legend lists the session types with their colors.
func (r Renderer) Legend() string {
	p := r.painter()
	parts := make([]string, 0, len(planner.SessionTypes))
	for _, t := range planner.SessionTypes {
		parts = append(parts, p.Paint(theme.TypeBadge(t), "■")+" "+t.Label())
	}
	return strings.Join(parts, "  ")
}

// Upcoming renders one line per session.
func (r Renderer) Upcoming(sessions []planner.StudySession) string {
	p := r.painter()
	if len(sessions) == 0 {
		return p.Paint(theme.Hint, "Nothing scheduled.") + "\n"
	}

	var b strings.Builder
	for _, s := range sessions {
		date := s.Date.Format("Mon Jan 02")
		label := p.Paint(theme.TypeBadge(s.Type), pad(s.Type.Label(), 10))
		topic := s.Topic
		if strings.HasPrefix(topic, planner.FocusPrefix) {
			topic = p.Paint(theme.Today, topic)
		}
		fmt.Fprintf(&b, "  %s  %s %s  %s  %s\n",
			p.Paint(theme.Body, date),
			label,
			p.Paint(theme.Subtitle, fmt.Sprintf("%2d min", s.Duration)),
			p.Paint(theme.StatusStyle(s.Status), statusMark(s.Status)),
			topic,
		)
	}
	return b.String()
}

// Progress renders the completion bar and status counts, boxed in a card
// when styled.
func (r Renderer) Progress(pr planner.Progress) string {
	bar := components.ProgressBar{
		Label:       "Progress",
		Percent:     pr.CompletionRate,
		ShowPercent: true,
		Width:       r.width() / 2,
		Styled:      r.Styled,
	}
	counts := fmt.Sprintf("%d done · %d missed · %d to go · %d/%d min",
		pr.Completed, pr.Missed, pr.Pending, pr.CompletedMinutes, pr.PlannedMinutes)
	p := r.painter()
	return p.Paint(theme.Card, bar.View()+"\n"+p.Paint(theme.Subtitle, counts)) + "\n"
}

func statusMark(s planner.Status) string {
	switch s {
	case planner.StatusCompleted:
		return "✓"
	case planner.StatusMissed:
		return "✗"
	}
	return "○"
}

func pad(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
