package playback

import (
	"testing"

	"github.com/llehouerou/airwaves/internal/catalog"
)

func TestStateOf(t *testing.T) {
	tr := &catalog.Track{ID: "t1"}
	tests := []struct {
		name    string
		current *catalog.Track
		playing bool
		want    State
	}{
		{"no track", nil, false, StateStopped},
		{"no track with stale intent", nil, true, StateStopped},
		{"track playing", tr, true, StatePlaying},
		{"track paused", tr, false, StatePaused},
	}
	for _, tt := range tests {
		if got := stateOf(tt.current, tt.playing); got != tt.want {
			t.Errorf("%s: stateOf() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{
		StateStopped: "stopped",
		StatePlaying: "playing",
		StatePaused:  "paused",
		State(99):    "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}
