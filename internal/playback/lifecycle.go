package playback

import (
	"time"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/player"
	"github.com/llehouerou/airwaves/internal/playlist"
	"github.com/llehouerou/airwaves/internal/policy"
	"github.com/llehouerou/airwaves/internal/state"
)

// Teardown saves the attached viewer's snapshot, stops playback and
// detaches the viewer. Persisted snapshots are kept.
func (s *serviceImpl) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
}

func (s *serviceImpl) teardownLocked() {
	s.saveLocked()
	if s.saver != nil {
		s.saver.Stop()
	}
	s.stopPlayTimersLocked()
	s.releaseLocked()
	s.queue.Clear()
	s.viewer = nil
	s.context = nil
	s.notifyQueueLocked()
	s.notifyModeLocked()
}

// Rehydrate attaches viewer and restores snap, or starts empty when snap is
// nil. Tracks the viewer may not play are dropped before anything is
// applied. The restored track is loaded and positioned but not started.
func (s *serviceImpl) Rehydrate(viewer policy.Viewer, snap *state.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil || !s.queue.IsEmpty() {
		s.teardownLocked()
	}
	s.viewer = &viewer
	log := s.log.With().Str("viewer", viewer.ID).Logger()

	if snap == nil {
		log.Debug().Msg("no playback snapshot, starting empty")
		s.notifyQueueLocked()
		return
	}

	items := policy.FilterQueue(snap.Items, s.viewer)
	if restoresDetached(snap, s.viewer) {
		next := len(policy.FilterQueue(snap.Items[:min(max(snap.CurrentIndex, 0), len(snap.Items))], s.viewer))
		s.queue.Restore(items, min(next, len(items)-1), playlist.ParseRepeatMode(snap.RepeatMode), snap.Shuffle)
		s.queue.Detach(next)
	} else {
		s.queue.Restore(items, rehydrateIndex(snap, items, s.viewer), playlist.ParseRepeatMode(snap.RepeatMode), snap.Shuffle)
	}
	s.context = copyContext(snap.Context)
	if dropped := len(snap.Items) - len(items); dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("pruned restored queue")
	}

	s.volume = player.ClampVolume(snap.Volume)
	s.device.SetVolume(s.volume)

	s.notifyQueueLocked()
	s.notifyModeLocked()
	s.notifyVolumeLocked()

	if snap.CurrentTrack == nil {
		return
	}
	current := *snap.CurrentTrack
	if !policy.Allowed(current, s.viewer) {
		log.Info().Str("track", current.ID).Msg("restored track is blocked, not loading it")
		return
	}
	if current.AudioURL == "" {
		return
	}
	if !s.loadLocked(current) {
		return
	}
	if pos := time.Duration(snap.PositionSeconds * float64(time.Second)); pos > 0 {
		s.device.Seek(pos)
		// Restored until the device reports the loaded source.
		s.position = pos
	}
}

// restoresDetached reports whether snap's current track was removed from
// its queue and will be loaded again.
func restoresDetached(snap *state.Snapshot, v *policy.Viewer) bool {
	return snap.Detached && snap.CurrentTrack != nil && snap.CurrentTrack.AudioURL != "" &&
		policy.Allowed(*snap.CurrentTrack, v)
}

// rehydrateIndex maps the persisted index onto the filtered queue.
func rehydrateIndex(snap *state.Snapshot, items []catalog.Track, v *policy.Viewer) int {
	i := snap.CurrentIndex
	if i >= 0 && i < len(snap.Items) && policy.Allowed(snap.Items[i], v) {
		return len(policy.FilterQueue(snap.Items[:i], v))
	}
	if snap.CurrentTrack != nil {
		for j, t := range items {
			if t.ID == snap.CurrentTrack.ID {
				return j
			}
		}
	}
	return 0
}

// ApplyViewer re-checks the current track and queue against updated viewer
// attributes. A blocked current track is stopped and cleared; blocked
// queue entries are pruned.
func (s *serviceImpl) ApplyViewer(viewer policy.Viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewer = &viewer

	if s.current != nil {
		if d := policy.IsPlayable(*s.current, s.viewer); !d.Allowed {
			s.blockedLocked(*s.current, d)
			s.releaseLocked()
		}
	}

	removed := s.queue.Retain(func(t catalog.Track) bool {
		return policy.Allowed(t, s.viewer)
	})
	if removed > 0 {
		s.log.Info().Str("viewer", viewer.ID).Int("removed", removed).Msg("pruned queue after viewer change")
		s.notifyQueueLocked()
	}
	s.saveLocked()
}
