package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/airwaves/internal/keymap"
	"github.com/llehouerou/airwaves/internal/ui/playerbar"
)

var helpKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))

// View implements tea.Model.
func (m Model) View() string {
	width := m.Width
	if width == 0 {
		width = 80
	}

	bar := playerbar.Render(playerbar.State{
		Status:      m.Status,
		ViewerID:    m.viewerID(),
		Notice:      m.Notice,
		DisplayMode: m.PlayerDisplayMode,
	}, width)

	if !m.ShowHelp {
		return bar + "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#585858")).Render("? help · q quit")
	}
	return bar + "\n" + helpView()
}

func helpView() string {
	var b strings.Builder
	for _, ctx := range []string{"playback", "queue", "session", "global"} {
		for _, kb := range keymap.ByContext(ctx) {
			b.WriteString(helpKeyStyle.Render(kb.Label()))
			b.WriteString("  ")
			b.WriteString(kb.Description)
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
