package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchServiceEvents returns a command that waits for the next engine event.
// Position updates are not watched; TickMsg refreshes them.
func (m Model) WatchServiceEvents() tea.Cmd {
	sub := m.playbackSub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-sub.StateChanged:
		case <-sub.TrackChanged:
		case <-sub.QueueChanged:
		case <-sub.ModeChanged:
		case <-sub.VolumeChanged:
		case e := <-sub.Blocked:
			return ServiceBlockedMsg{Message: e.Message}
		case e := <-sub.Error:
			return ServiceErrorMsg{Message: e.Message()}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
		return ServiceChangedMsg{}
	}
}
