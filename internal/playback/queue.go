package playback

import (
	"slices"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/errmsg"
	"github.com/llehouerou/airwaves/internal/playlist"
	"github.com/llehouerou/airwaves/internal/policy"
)

// PlayTrack plays a single track. If the track is already queued the queue
// jumps to it, otherwise the queue is replaced by the track alone.
func (s *serviceImpl) PlayTrack(track catalog.Track, pctx *catalog.PlaybackContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d := policy.IsPlayable(track, s.viewer); !d.Allowed {
		s.blockedLocked(track, d)
		return
	}

	s.context = copyContext(pctx)
	if i := slices.IndexFunc(s.queue.Tracks(), func(t catalog.Track) bool { return t.ID == track.ID }); i >= 0 {
		s.queue.JumpTo(i)
	} else {
		if _, err := s.queue.SetQueue([]catalog.Track{track}, 0); err != nil {
			s.failLocked(errmsg.OpQueueSet, &track, classify(err, ErrEmptyQueue))
			return
		}
		s.notifyQueueLocked()
	}
	s.playLocked(track, false)
	s.saveLocked()
}

// PlayQueue replaces the queue with the playable subset of tracks and plays
// from start. When the requested start track is blocked, playback falls
// back to the first playable track and the block is reported. When nothing
// is playable the block is reported and nothing changes.
func (s *serviceImpl) PlayQueue(tracks []catalog.Track, start int, pctx *catalog.PlaybackContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(tracks) == 0 {
		s.failLocked(errmsg.OpQueueSet, nil, ErrEmptyQueue)
		return
	}
	if start < 0 || start >= len(tracks) {
		start = 0
	}

	requested := tracks[start]
	decision := policy.IsPlayable(requested, s.viewer)
	filtered := policy.FilterQueue(tracks, s.viewer)
	if len(filtered) == 0 {
		s.blockedLocked(requested, decision)
		return
	}

	mapped := 0
	if decision.Allowed {
		// Position of the requested track among the playable ones.
		mapped = len(policy.FilterQueue(tracks[:start], s.viewer))
	} else {
		s.blockedLocked(requested, decision)
	}

	t, err := s.queue.SetQueue(filtered, mapped)
	if err != nil {
		s.failLocked(errmsg.OpQueueSet, &requested, classify(err, ErrEmptyQueue))
		return
	}
	s.context = copyContext(pctx)
	s.notifyQueueLocked()
	s.playLocked(*t, false)
	s.saveLocked()
}

// AddToQueue appends a playable track to the queue.
func (s *serviceImpl) AddToQueue(track catalog.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d := policy.IsPlayable(track, s.viewer); !d.Allowed {
		s.blockedLocked(track, d)
		return
	}
	s.queue.Append(track)
	s.notifyQueueLocked()
	s.saveLocked()
}

// RemoveFromQueue removes the entry at index. Removing the playing entry
// keeps it playing; the next advance lands on the entry after it. Emptying
// the queue stops playback.
func (s *serviceImpl) RemoveFromQueue(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.queue.RemoveAt(index) {
		return
	}
	if s.queue.IsEmpty() {
		s.queue.Clear()
		s.releaseLocked()
		s.notifyModeLocked()
	}
	s.notifyQueueLocked()
	s.saveLocked()
}

// ClearQueue collapses the queue to the current track and resets shuffle
// and repeat. Without a current track everything is cleared.
func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.Collapse(s.current)
	if s.current == nil {
		s.releaseLocked()
	}
	s.notifyQueueLocked()
	s.notifyModeLocked()
	s.saveLocked()
}

func (s *serviceImpl) ToggleShuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.ToggleShuffle()
	s.modesChangedLocked()
}

func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.Shuffle() == enabled {
		return
	}
	s.queue.SetShuffle(enabled)
	s.modesChangedLocked()
}

// ToggleRepeat cycles off → all → one → off.
func (s *serviceImpl) ToggleRepeat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.CycleRepeatMode()
	s.notifyModeLocked()
	s.saveLocked()
}

func (s *serviceImpl) SetRepeatMode(mode playlist.RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.RepeatMode() == mode {
		return
	}
	s.queue.SetRepeatMode(mode)
	s.notifyModeLocked()
	s.saveLocked()
}

func (s *serviceImpl) modesChangedLocked() {
	s.notifyModeLocked()
	s.notifyQueueLocked()
	s.saveLocked()
}
