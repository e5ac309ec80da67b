package playback

import (
	"github.com/llehouerou/airwaves/internal/playlist"
	"github.com/llehouerou/airwaves/internal/policy"
)

// SkipNext advances to the next playable track according to the repeat
// mode.
func (s *serviceImpl) SkipNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipNextLocked()
}

func (s *serviceImpl) skipNextLocked() {
	n := s.queue.Len()
	if n == 0 {
		s.stopAtEndLocked()
		return
	}

	if s.queue.RepeatMode() == playlist.RepeatOne && !s.queue.Detached() {
		if t := s.queue.Current(); t != nil {
			s.playLocked(*t, true)
			return
		}
	}

	wrap := s.queue.RepeatMode() == playlist.RepeatAll
	target := s.queue.NextIndex()
	if target >= n {
		if !wrap {
			s.stopAtEndLocked()
			return
		}
		target = 0
	}

	idx := s.firstPlayableLocked(target, wrap)
	if idx < 0 {
		t := s.queue.At(target)
		s.blockedLocked(*t, policy.IsPlayable(*t, s.viewer))
		s.stopAtEndLocked()
		return
	}
	s.moveToLocked(idx)
}

// firstPlayableLocked scans forward from start for a track the viewer may
// play, wrapping around the queue when wrap is set. It returns -1 if there
// is none.
func (s *serviceImpl) firstPlayableLocked(start int, wrap bool) int {
	tracks := s.queue.Tracks()
	if i := policy.FirstPlayable(tracks, start, s.viewer); i >= 0 {
		return i
	}
	if !wrap {
		return -1
	}
	if i := policy.FirstPlayable(tracks[:start], 0, s.viewer); i >= 0 {
		return i
	}
	return -1
}

// stopAtEndLocked stops playback and leaves the index where it is.
func (s *serviceImpl) stopAtEndLocked() {
	s.device.Pause()
	s.saveLocked()
}

// SkipPrevious rewinds the current track, or moves one entry back when
// the track has barely started.
func (s *serviceImpl) SkipPrevious() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil && s.queue.IsEmpty() {
		return
	}
	if s.position > s.opts.RewindThreshold {
		s.rewindLocked()
		return
	}

	prev := s.queue.PreviousIndex()
	if prev < 0 {
		if s.queue.RepeatMode() != playlist.RepeatAll {
			s.rewindLocked()
			return
		}
		prev = s.queue.Len() - 1
	}

	t := s.queue.At(prev)
	if t == nil {
		s.rewindLocked()
		return
	}
	if d := policy.IsPlayable(*t, s.viewer); !d.Allowed {
		s.blockedLocked(*t, d)
		s.rewindLocked()
		return
	}
	s.moveToLocked(prev)
}

func (s *serviceImpl) rewindLocked() {
	if s.source == "" {
		return
	}
	s.device.Seek(0)
}

// JumpTo plays the queue entry at index.
func (s *serviceImpl) JumpTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.queue.At(index)
	if t == nil {
		return
	}
	if d := policy.IsPlayable(*t, s.viewer); !d.Allowed {
		s.blockedLocked(*t, d)
		return
	}
	s.moveToLocked(index)
}

// moveToLocked makes index current and plays it from the start.
func (s *serviceImpl) moveToLocked(index int) {
	prevIndex := s.queue.CurrentIndex()
	t := s.queue.JumpTo(index)
	if t == nil {
		return
	}
	if prevIndex != index && sameTrack(s.current, t) {
		// Same track at another position: still a track change for the UI.
		s.notifyTrackLocked(s.current)
	}
	s.playLocked(*t, true)
	s.saveLocked()
}
