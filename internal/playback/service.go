// Package playback is the playback engine: it owns what is playing, what
// plays next and under which restrictions.
//
// Public actions never return errors. Failures and policy blocks are
// reported as ErrorEvent and BlockedEvent on subscriptions, and state
// changes as the matching change events.
package playback

import (
	"context"
	"time"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/playlist"
	"github.com/llehouerou/airwaves/internal/policy"
	"github.com/llehouerou/airwaves/internal/state"
)

// Service defines the playback engine contract.
type Service interface {
	// Queue actions
	PlayTrack(track catalog.Track, pctx *catalog.PlaybackContext)
	PlayQueue(tracks []catalog.Track, start int, pctx *catalog.PlaybackContext)
	AddToQueue(track catalog.Track)
	RemoveFromQueue(index int)
	ClearQueue()
	JumpTo(index int)

	// Transport
	TogglePlayPause()
	SkipNext()
	SkipPrevious()
	SeekTo(position time.Duration)
	SetVolume(level float64)

	// Modes
	ToggleShuffle()
	SetShuffle(enabled bool)
	ToggleRepeat()
	SetRepeatMode(mode playlist.RepeatMode)

	// Social
	ToggleLike()

	// Read-only snapshot of the engine state.
	Status() Status

	// Event subscription
	Subscribe() *Subscription

	// Session lifecycle
	Viewer() *policy.Viewer
	Teardown()
	Rehydrate(viewer policy.Viewer, snap *state.Snapshot)
	ApplyViewer(viewer policy.Viewer)

	// Run pumps device and bus events until ctx is done or Close is called.
	Run(ctx context.Context) error
	Close() error
}

// Status is a point-in-time copy of the engine state.
type Status struct {
	State        State
	CurrentTrack *catalog.Track
	Queue        []catalog.Track
	Index        int
	IsPlaying    bool
	Position     time.Duration
	Duration     time.Duration
	Volume       float64
	RepeatMode   playlist.RepeatMode
	Shuffle      bool
	Context      *catalog.PlaybackContext
}
