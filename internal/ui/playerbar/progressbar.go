package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
)

// RenderProgressBar renders the transport line.
// Format: ▶  1:23  ━━━━━─────  4:56
func RenderProgressBar(position, duration time.Duration, width int, symbol string) string {
	posStr := formatDuration(position)
	durStr := formatDuration(duration)

	fixedWidth := lipgloss.Width(symbol) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return symbol + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(max(int(float64(barWidth)*ratio), 0), barWidth)

	bar := progressBarFilled().Render(strings.Repeat("━", filled)) +
		progressBarEmpty().Render(strings.Repeat("─", barWidth-filled))

	return symbol + "  " + progressTimeStyle().Render(posStr) + "  " + bar + "  " + progressTimeStyle().Render(durStr)
}
