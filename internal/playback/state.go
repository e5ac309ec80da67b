package playback

import "github.com/llehouerou/airwaves/internal/catalog"

// State is the engine's playback state. It is derived from the current
// track and the play intent, never stored.
type State int

const (
	// StateStopped means there is no current track. The queue may still
	// hold entries, for example after the current one was removed.
	StateStopped State = iota
	StatePlaying
	// StatePaused means a current track is loaded without play intent.
	// Device failures revert here.
	StatePaused
)

func stateOf(current *catalog.Track, playing bool) State {
	switch {
	case current == nil:
		return StateStopped
	case playing:
		return StatePlaying
	default:
		return StatePaused
	}
}

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}
