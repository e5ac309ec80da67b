package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/airwaves/internal/keymap"
	"github.com/llehouerou/airwaves/internal/ui/playerbar"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case TickMsg:
		m.refresh()
		return m, TickCmd()

	case ServiceChangedMsg:
		m.refresh()
		return m, m.WatchServiceEvents()

	case ServiceBlockedMsg:
		m.Notice = playerbar.Notice{Text: msg.Message}
		m.refresh()
		return m, m.WatchServiceEvents()

	case ServiceErrorMsg:
		m.Notice = playerbar.Notice{Text: msg.Message, IsError: true}
		m.refresh()
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

//nolint:gocyclo // flat action dispatch
func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	action := m.Keys.Resolve(key)
	if action == "" {
		return m, nil
	}
	m.Notice = playerbar.Notice{}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp
	case keymap.ActionPlayPause:
		m.Service.TogglePlayPause()
	case keymap.ActionNextTrack:
		m.Service.SkipNext()
	case keymap.ActionPrevTrack:
		m.Service.SkipPrevious()
	case keymap.ActionSeekBack:
		m.Service.SeekTo(m.Status.Position - seekStep*time.Second)
	case keymap.ActionSeekForward:
		m.Service.SeekTo(m.Status.Position + seekStep*time.Second)
	case keymap.ActionVolumeUp:
		m.Service.SetVolume(m.Status.Volume + volumeStep)
	case keymap.ActionVolumeDown:
		m.Service.SetVolume(m.Status.Volume - volumeStep)
	case keymap.ActionTogglePlayerDisplay:
		m.TogglePlayerDisplayMode()
	case keymap.ActionCycleRepeat:
		m.Service.ToggleRepeat()
	case keymap.ActionToggleShuffle:
		m.Service.ToggleShuffle()
	case keymap.ActionToggleLike:
		m.Service.ToggleLike()
	case keymap.ActionFirstTrack:
		if len(m.Status.Queue) > 0 {
			m.Service.JumpTo(0)
		}
	case keymap.ActionLastTrack:
		if n := len(m.Status.Queue); n > 0 {
			m.Service.JumpTo(n - 1)
		}
	case keymap.ActionRemoveCurrent:
		if m.Status.Index >= 0 {
			m.Service.RemoveFromQueue(m.Status.Index)
		}
	case keymap.ActionClear:
		m.Service.ClearQueue()
	case keymap.ActionLogin:
		if m.Bus != nil && m.Login.ID != "" {
			m.Bus.PublishLoggedIn(m.Login)
		}
	case keymap.ActionLogout:
		if m.Bus != nil {
			m.Bus.PublishLoggedOut()
		}
	}

	m.refresh()
	return m, nil
}

// TogglePlayerDisplayMode switches between the compact and expanded bar.
func (m *Model) TogglePlayerDisplayMode() {
	if m.PlayerDisplayMode == playerbar.ModeExpanded {
		m.PlayerDisplayMode = playerbar.ModeCompact
		return
	}
	m.PlayerDisplayMode = playerbar.ModeExpanded
}
