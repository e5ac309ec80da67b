// Package app is the bubbletea model of the terminal client.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/airwaves/internal/bus"
	"github.com/llehouerou/airwaves/internal/keymap"
	"github.com/llehouerou/airwaves/internal/playback"
	"github.com/llehouerou/airwaves/internal/policy"
	"github.com/llehouerou/airwaves/internal/ui/playerbar"
)

const (
	seekStep   = 5 // seconds
	volumeStep = 0.05
)

// Model is the root application model.
type Model struct {
	Service playback.Service
	Bus     *bus.Bus
	Login   policy.Viewer // viewer signalled by the login key
	Keys    *keymap.Resolver

	Status            playback.Status
	Notice            playerbar.Notice
	PlayerDisplayMode playerbar.DisplayMode
	ShowHelp          bool
	Width             int
	Height            int

	playbackSub *playback.Subscription
}

// New creates the model and subscribes to the engine. b may be nil, in
// which case the login and logout keys do nothing.
func New(service playback.Service, b *bus.Bus, login policy.Viewer) Model {
	return Model{
		Service:           service,
		Bus:               b,
		Login:             login,
		Keys:              keymap.Default(),
		Status:            service.Status(),
		PlayerDisplayMode: playerbar.ModeExpanded,
		playbackSub:       service.Subscribe(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), m.WatchServiceEvents())
}

func (m *Model) refresh() {
	m.Status = m.Service.Status()
}

func (m Model) viewerID() string {
	if v := m.Service.Viewer(); v != nil {
		return v.ID
	}
	return ""
}
