package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Plain(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		filled  int
	}{
		{"empty", 0, 0},
		{"half", 0.5, 5},
		{"full", 1, 10},
		{"overflow", 1.5, 10},
		{"negative", -0.2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar{Percent: tt.percent, Width: 10}
			out := bar.View()
			assert.Equal(t, tt.filled, strings.Count(out, filledCell))
			assert.Equal(t, 10-tt.filled, strings.Count(out, emptyCell))
		})
	}
}

func TestProgressBar_LabelAndPercent(t *testing.T) {
	bar := ProgressBar{Label: "Done", Percent: 0.25, ShowPercent: true, Width: 20}
	out := bar.View()
	assert.True(t, strings.HasPrefix(out, "Done  "))
	assert.True(t, strings.HasSuffix(out, "  25%"))
}

func TestProgressBar_StyledKeepsText(t *testing.T) {
	plain := ProgressBar{Label: "Plan", Percent: 0.4, ShowPercent: true, Width: 30}
	styled := NewProgressBar("Plan", 0.4, true, 30)
	assert.Equal(t, plain.View(), ansi.Strip(styled.View()))
}
