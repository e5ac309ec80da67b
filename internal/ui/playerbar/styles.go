package playerbar

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#a78bfa")
	colorBase    = lipgloss.Color("#c0c0c0")
	colorMuted   = lipgloss.Color("#808080")
	colorSubtle  = lipgloss.Color("#585858")
	colorWarning = lipgloss.Color("#f1a208")
	colorError   = lipgloss.Color("#ff5555")
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorBase)
}

func artistStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func metaStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSubtle)
}

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPrimary)
}

func progressBarEmpty() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSubtle)
}

func progressTimeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func likedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPrimary)
}

func currentRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
}

func noticeStyle(isError bool) lipgloss.Style {
	if isError {
		return lipgloss.NewStyle().Foreground(colorError)
	}
	return lipgloss.NewStyle().Foreground(colorWarning)
}
