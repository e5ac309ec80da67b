package playback

import (
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/errmsg"
	"github.com/llehouerou/airwaves/internal/policy"
)

func (s *serviceImpl) broadcast(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

// notifyStateLocked emits a StateChange if the derived state moved.
func (s *serviceImpl) notifyStateLocked() {
	cur := s.stateLocked()
	if cur == s.lastState {
		return
	}
	e := StateChange{Previous: s.lastState, Current: cur}
	s.lastState = cur
	s.broadcast(func(sub *Subscription) { sub.sendState(e) })
}

func (s *serviceImpl) notifyTrackLocked(prev *catalog.Track) {
	e := TrackChange{Previous: copyTrack(prev), Current: copyTrack(s.current), Index: s.queue.CurrentIndex()}
	s.broadcast(func(sub *Subscription) { sub.sendTrack(e) })
}

func (s *serviceImpl) notifyQueueLocked() {
	e := QueueChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()}
	s.broadcast(func(sub *Subscription) { sub.sendQueue(e) })
}

func (s *serviceImpl) notifyModeLocked() {
	e := ModeChange{RepeatMode: s.queue.RepeatMode(), Shuffle: s.queue.Shuffle()}
	s.broadcast(func(sub *Subscription) { sub.sendMode(e) })
}

func (s *serviceImpl) notifyVolumeLocked() {
	e := VolumeChange{Volume: s.volume}
	s.broadcast(func(sub *Subscription) { sub.sendVolume(e) })
}

func (s *serviceImpl) notifyPositionLocked() {
	e := PositionChange{Position: s.position, Duration: s.duration}
	s.broadcast(func(sub *Subscription) { sub.sendPosition(e) })
}

// blockedLocked reports a policy block for t.
func (s *serviceImpl) blockedLocked(t catalog.Track, d policy.Decision) {
	e := BlockedEvent{
		Track:    t,
		Decision: d,
		Message:  s.opts.Messages.Text(d, s.viewer),
		Err:      errors.Wrapf(ErrPolicyBlocked, "track %s: %s", t.ID, d.Reason),
	}
	s.log.Info().
		Str("track", t.ID).
		Str("reason", string(d.Reason)).
		Msg("playback blocked")
	s.broadcast(func(sub *Subscription) { sub.sendBlocked(e) })
}

// failLocked reports a failed action. err should wrap one of the error
// classes.
func (s *serviceImpl) failLocked(op errmsg.Op, t *catalog.Track, err error) {
	e := ErrorEvent{Operation: op, Err: err}
	if t != nil {
		e.TrackID = t.ID
		e.Title = t.Title
	}
	s.log.Warn().Err(err).Str("op", string(op)).Str("track", e.TrackID).Msg("playback error")
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}
