package components

import (
	"github.com/fileandclaim/fcidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// data provenance on the right, and an optional warning in between.
func RenderStatusBar(width int, info, warning string, reloading bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	busyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	left := base.Render(" [?]help [r]eload [q]uit")
	if warning != "" {
		left += base.Render("  ") + warnStyle.Render("! "+warning)
	}

	right := info
	if reloading {
		right = "reloading…"
	}
	rightR := base.Render(right + " ")
	if reloading {
		rightR = busyStyle.Render(right + " ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(rightR), 0)
	bar := left + base.Render(lipgloss.PlaceHorizontal(padding, lipgloss.Left, "")) + rightR
	return lipgloss.NewStyle().Background(t.Surface).Width(width).MaxWidth(width).Render(bar)
}
