package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{80, "$80.00"},
		{1200.5, "$1,200.50"},
		{1234567.891, "$1,234,567.89"},
		{-5, "-$5.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in), "%v", tt.in)
	}
}

func TestFormatAmount(t *testing.T) {
	v := 42.0
	assert.Equal(t, "$42.00", FormatAmount(&v))
	assert.Equal(t, NoValue, FormatAmount(nil))
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "$950", FormatCompact(950))
	assert.Equal(t, "$1.5k", FormatCompact(1500))
	assert.Equal(t, "$2.3M", FormatCompact(2_300_000))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "42ms", FormatElapsed(42*time.Millisecond))
	assert.Equal(t, "1.5s", FormatElapsed(1500*time.Millisecond))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Stages",
		Headers: []string{"Stage", "Deals"},
		Rows: [][]string{
			{"CRA Processing", "2"},
			{"---"},
			{"Total", "12"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "  Stages", lines[0])
	assert.Equal(t, "╭────────────────┬───────╮", lines[1])
	assert.Equal(t, "│ Stage          │ Deals │", lines[2])
	assert.Equal(t, "│ CRA Processing │     2 │", lines[4])
	assert.Equal(t, "├────────────────┼───────┤", lines[5])
	assert.Equal(t, "│ Total          │    12 │", lines[6])
	assert.Equal(t, "╰────────────────┴───────╯", lines[7])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderBarChart(t *testing.T) {
	out := RenderBarChart("", []Bar{
		{Label: "Dana", Value: 4},
		{Label: "Lee", Value: 2},
		{Label: "Sam", Value: 0},
	}, 8, ColorBlue)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "  Dana ████████ 4", lines[0])
	assert.Equal(t, "  Lee  ████░░░░ 2", lines[1])
	assert.Equal(t, "  Sam  ░░░░░░░░ 0", lines[2])
}

func TestRenderShareBar(t *testing.T) {
	out := RenderShareBar([]string{"a", "b"}, []float64{1, 3}, 8)
	assert.Contains(t, out, "████████")
	assert.Contains(t, out, "a 25.0%")
	assert.Contains(t, out, "b 75.0%")

	assert.Contains(t, RenderShareBar(nil, nil, 8), "no data")
}
