package playback

import "github.com/cockroachdb/errors"

// Error classes carried by ErrorEvent.Err and BlockedEvent. Use errors.Is.
var (
	ErrPolicyBlocked = errors.New("blocked by content policy")
	ErrDevice        = errors.New("playback device error")
	ErrInvalidTrack  = errors.New("track has no audio source")
	ErrPersistence   = errors.New("playback state unavailable")
	ErrEmptyQueue    = errors.New("nothing to play")
)

// classError tags a cause with one of the error classes. The message stays
// the cause's, and both the cause and the class match errors.Is.
type classError struct {
	cause error
	class error
}

func (e *classError) Error() string { return e.cause.Error() }
func (e *classError) Unwrap() error { return e.cause }

func (e *classError) Is(target error) bool { return target == e.class }

// classify returns err tagged with class. A nil err yields class itself.
func classify(err, class error) error {
	if err == nil {
		return class
	}
	return &classError{cause: err, class: class}
}
