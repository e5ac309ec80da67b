package playback

import (
	"time"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/errmsg"
	"github.com/llehouerou/airwaves/internal/playlist"
	"github.com/llehouerou/airwaves/internal/policy"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a different track becomes current, including
// when the current track is cleared (Current == nil).
type TrackChange struct {
	Previous *catalog.Track
	Current  *catalog.Track
	Index    int
}

// QueueChange is emitted when the queue contents or order change.
type QueueChange struct {
	Tracks []catalog.Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	RepeatMode playlist.RepeatMode
	Shuffle    bool
}

// VolumeChange is emitted when the volume changes.
type VolumeChange struct {
	Volume float64
}

// PositionChange is emitted when the device reports a new position or
// duration.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// BlockedEvent is emitted when the content policy prevents playback.
// Err wraps ErrPolicyBlocked.
type BlockedEvent struct {
	Track    catalog.Track
	Decision policy.Decision
	Message  string
	Err      error
}

// ErrorEvent is emitted when an action fails. Err wraps one of the
// package's error classes.
type ErrorEvent struct {
	Operation errmsg.Op
	TrackID   string
	Title     string
	Err       error
}

// Message returns the user-facing text for the error.
func (e ErrorEvent) Message() string {
	return errmsg.FormatWith(e.Operation, e.Title, e.Err)
}
