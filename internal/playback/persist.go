package playback

import (
	"github.com/llehouerou/airwaves/internal/state"
)

func (s *serviceImpl) snapshotLocked() state.Snapshot {
	index, detached := s.queue.CurrentIndex(), false
	if s.current != nil && s.queue.Detached() {
		index, detached = s.queue.NextIndex(), true
	}
	return state.Snapshot{
		CurrentTrack:    copyTrack(s.current),
		Items:           s.queue.Tracks(),
		CurrentIndex:    index,
		Detached:        detached,
		Volume:          s.volume,
		RepeatMode:      s.queue.RepeatMode().String(),
		Shuffle:         s.queue.Shuffle(),
		PositionSeconds: s.position.Seconds(),
		Context:         copyContext(s.context),
	}
}

// saveLocked writes the full snapshot for the attached viewer. Nothing is
// persisted while no viewer is attached.
func (s *serviceImpl) saveLocked() {
	if s.saver == nil || s.viewer == nil {
		return
	}
	s.saver.SaveNow(s.viewer.ID, s.snapshotLocked())
}

// schedulePositionSaveLocked coalesces position-only writes.
func (s *serviceImpl) schedulePositionSaveLocked() {
	if s.saver == nil || s.viewer == nil {
		return
	}
	s.saver.Schedule(s.viewer.ID, s.snapshotLocked())
}
