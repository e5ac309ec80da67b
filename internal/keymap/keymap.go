package keymap

import (
	"strings"

	"github.com/samber/lo"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "queue", "session"
}

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekBack, []string{"left"}, "Seek -5s", "playback"},
	{ActionSeekForward, []string{"right"}, "Seek +5s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionTogglePlayerDisplay, []string{"v"}, "Toggle queue", "playback"},
	{ActionCycleRepeat, []string{"r"}, "Cycle repeat mode", "playback"},
	{ActionToggleShuffle, []string{"s"}, "Toggle shuffle", "playback"},
	{ActionToggleLike, []string{"l"}, "Like/unlike", "playback"},

	// Queue
	{ActionFirstTrack, []string{"home"}, "First track", "queue"},
	{ActionLastTrack, []string{"end"}, "Last track", "queue"},
	{ActionRemoveCurrent, []string{"x"}, "Remove playing track", "queue"},
	{ActionClear, []string{"c"}, "Clear except playing", "queue"},

	// Session
	{ActionLogin, []string{"i"}, "Log in", "session"},
	{ActionLogout, []string{"o"}, "Log out", "session"},
}

// ByContext returns the bindings shown under a help section.
func ByContext(context string) []Binding {
	return lo.Filter(All, func(b Binding, _ int) bool { return b.Context == context })
}

// Label returns b's keys as shown in help text.
func (b Binding) Label() string {
	return strings.Join(lo.Map(b.Keys, func(k string, _ int) string {
		switch k {
		case " ":
			return "space"
		case "pgup", "pgdown":
			return strings.Replace(k, "pg", "page ", 1)
		}
		return k
	}), "/")
}

// Resolver maps key presses to actions.
type Resolver struct {
	actions map[string]Action
}

// NewResolver indexes bindings by key. A key bound more than once keeps
// its first action.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{actions: make(map[string]Action)}
	for _, b := range bindings {
		for _, k := range b.Keys {
			if _, ok := r.actions[k]; !ok {
				r.actions[k] = b.Action
			}
		}
	}
	return r
}

// Default returns the resolver for All.
func Default() *Resolver {
	return NewResolver(All)
}

// Resolve returns the action bound to key, or "" when none is.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}
