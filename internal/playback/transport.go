package playback

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/errmsg"
	"github.com/llehouerou/airwaves/internal/player"
)

// playLocked makes t the current track and starts it.
//
// If t is already loaded it is resumed (or restarted when restart is set)
// instead of being reloaded. A track without audio is rejected before the
// device is touched.
func (s *serviceImpl) playLocked(t catalog.Track, restart bool) {
	if t.AudioURL == "" {
		s.failLocked(errmsg.OpTrackLoad, &t, errors.Wrapf(ErrInvalidTrack, "track %s", t.ID))
		return
	}

	if s.isLoadedLocked(t) {
		s.current = &t
		if restart {
			s.device.Seek(0)
			s.countPending = true
		}
		if !s.isPlaying {
			s.startDeviceLocked(errmsg.OpPlaybackResume)
		}
		return
	}

	if !s.loadLocked(t) {
		return
	}
	s.startDeviceLocked(errmsg.OpPlaybackStart)
}

func (s *serviceImpl) isLoadedLocked(t catalog.Track) bool {
	return s.current != nil && s.current.ID == t.ID && s.source != "" && s.source == t.AudioURL
}

// loadLocked loads t on the device without starting it.
func (s *serviceImpl) loadLocked(t catalog.Track) bool {
	prev := s.current
	s.current = &t
	s.source = ""
	s.position = 0
	s.duration = 0
	// A freshly loaded source is never playing.
	s.isPlaying = false
	s.countPending = false

	if !sameTrack(prev, s.current) {
		s.notifyTrackLocked(prev)
	}

	if err := s.device.Load(t.AudioURL); err != nil {
		s.failLocked(errmsg.OpTrackLoad, &t, classify(err, ErrDevice))
		s.notifyStateLocked()
		return false
	}
	s.source = t.AudioURL
	s.countPending = true
	s.notifyStateLocked()
	return true
}

func (s *serviceImpl) startDeviceLocked(op errmsg.Op) {
	if err := s.device.Play(); err != nil {
		s.isPlaying = false
		s.failLocked(op, s.current, classify(err, ErrDevice))
		s.notifyStateLocked()
	}
}

// releaseLocked unloads the device and clears the current track.
func (s *serviceImpl) releaseLocked() {
	prev := s.current
	s.device.Pause()
	s.device.Release()
	s.current = nil
	s.source = ""
	s.isPlaying = false
	s.position = 0
	s.duration = 0
	s.countPending = false
	if prev != nil {
		s.notifyTrackLocked(prev)
	}
	s.notifyStateLocked()
}

func sameTrack(a, b *catalog.Track) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// TogglePlayPause pauses a playing track, resumes a paused one, or starts
// the current queue entry when nothing is loaded.
func (s *serviceImpl) TogglePlayPause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isPlaying {
		s.device.Pause()
		return
	}
	if s.current != nil {
		s.playLocked(*s.current, false)
		return
	}
	if t := s.queue.Current(); t != nil {
		s.playLocked(*t, false)
		s.saveLocked()
		return
	}
	if s.queue.Detached() {
		s.skipNextLocked()
	}
}

// SeekTo moves the current track to position, clamped to the track length.
func (s *serviceImpl) SeekTo(position time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == "" {
		return
	}
	position = max(position, 0)
	if s.duration > 0 {
		position = min(position, s.duration)
	}
	s.device.Seek(position)
}

// SetVolume sets the volume, clamped to [0, 1].
func (s *serviceImpl) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level = player.ClampVolume(level)
	if level == s.volume {
		return
	}
	s.volume = level
	s.device.SetVolume(level)
	s.notifyVolumeLocked()
	s.saveLocked()
}

// handleEvent applies a device event. Events for a source other than the
// loaded one are stale and ignored.
func (s *serviceImpl) handleEvent(ev player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if ev.Source == "" || ev.Source != s.source {
		s.log.Debug().Stringer("event", ev.Kind).Str("source", ev.Source).Msg("ignoring stale device event")
		return
	}

	switch ev.Kind {
	case player.EventMetadataLoaded:
		// Carries any seek issued while the source was loading.
		s.position = ev.Position
		s.duration = ev.Duration
		s.notifyPositionLocked()

	case player.EventPlay:
		s.isPlaying = true
		if ev.Duration > 0 {
			s.duration = ev.Duration
		}
		if s.countPending && s.current != nil {
			s.countPending = false
			s.armPlayCountLocked(*s.current)
		}
		s.notifyStateLocked()

	case player.EventPause:
		s.isPlaying = false
		s.position = ev.Position
		s.notifyStateLocked()
		s.saveLocked()

	case player.EventTimeUpdate:
		s.position = ev.Position
		if ev.Duration > 0 {
			s.duration = ev.Duration
		}
		s.notifyPositionLocked()
		s.schedulePositionSaveLocked()

	case player.EventEnded:
		s.isPlaying = false
		s.position = ev.Position
		s.notifyStateLocked()
		s.skipNextLocked()

	case player.EventError:
		s.isPlaying = false
		// The device dropped the source; the next play reloads it.
		s.source = ""
		err := ev.Err
		if err == nil {
			err = errors.New("playback failed")
		}
		s.failLocked(errmsg.OpPlaybackStart, s.current, classify(err, ErrDevice))
		s.notifyStateLocked()
	}
}

// armPlayCountLocked schedules the play count for t. The timer is keyed to
// the load, not to the current track: it still fires if the track changes
// before it does.
func (s *serviceImpl) armPlayCountLocked(t catalog.Track) {
	if s.catalog == nil {
		return
	}
	s.timerSeq++
	id := s.timerSeq
	s.playTimers[id] = time.AfterFunc(s.opts.PlayCountAfter, func() {
		s.mu.Lock()
		_, live := s.playTimers[id]
		delete(s.playTimers, id)
		ctx := s.ctx
		s.mu.Unlock()
		if !live {
			return
		}

		if err := s.catalog.IncrementPlayCount(ctx, t.ID); err != nil {
			s.log.Warn().
				Err(err).
				Str("op", string(errmsg.OpPlayCount)).
				Str("track", t.ID).
				Msg("failed to record play")
		}
	})
}

func (s *serviceImpl) stopPlayTimersLocked() {
	for id, timer := range s.playTimers {
		timer.Stop()
		delete(s.playTimers, id)
	}
}
