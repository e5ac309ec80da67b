// Package player wraps the audio output device.
//
// A Device only reports what actually happened through Events: callers must
// not assume a track is playing because Play returned nil.
package player

import (
	"time"

	"github.com/cockroachdb/errors"
)

// EventKind identifies a device event.
type EventKind int

const (
	EventPlay           EventKind = iota // playback actually started
	EventPause                           // playback paused
	EventTimeUpdate                      // position moved
	EventMetadataLoaded                  // duration became known
	EventEnded                           // the source played to its end
	EventError                           // the source failed while playing
)

func (k EventKind) String() string {
	switch k {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventTimeUpdate:
		return "timeupdate"
	case EventMetadataLoaded:
		return "loadedmetadata"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by a Device. Source is the source that was loaded when
// the event was produced, so late events for a replaced source can be told
// apart.
type Event struct {
	Kind     EventKind
	Source   string
	Position time.Duration
	Duration time.Duration
	Err      error
}

// Device is a single audio output.
type Device interface {
	// Load replaces the current source. It does not start playback and
	// may complete asynchronously: EventMetadataLoaded or EventError reports
	// the outcome.
	Load(source string) error
	// Play starts or resumes the loaded source. A nil error only means the
	// request was accepted; EventPlay confirms it.
	Play() error
	Pause()
	// Seek moves to an absolute position.
	Seek(pos time.Duration)
	// SetVolume sets the linear volume in [0, 1].
	SetVolume(level float64)
	// Release unloads the source and frees its resources.
	Release()
	Events() <-chan Event
	Close() error
}

var (
	ErrNoSource          = errors.New("no source loaded")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// ClampVolume limits a volume level to [0, 1].
func ClampVolume(level float64) float64 {
	return min(max(level, 0), 1)
}
