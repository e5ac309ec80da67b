package playback

import (
	"github.com/llehouerou/airwaves/internal/bus"
	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/errmsg"
)

// ToggleLike toggles the viewer's like on the current track. The catalog
// call runs in the background; the result is fanned out on the bus so that
// every cached copy of the track is updated, or applied locally when there
// is no bus. Failures are logged only.
func (s *serviceImpl) ToggleLike() {
	s.mu.RLock()
	client, viewer, current, ctx := s.catalog, s.viewer, copyTrack(s.current), s.ctx
	s.mu.RUnlock()

	if client == nil || viewer == nil || current == nil {
		s.log.Debug().Msg("like ignored: no catalog, viewer or track")
		return
	}

	userID, trackID := viewer.ID, current.ID
	go func() {
		liked, err := client.ToggleLike(ctx, trackID)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("op", string(errmsg.OpLikeToggle)).
				Str("track", trackID).
				Msg("failed to toggle like")
			return
		}
		e := bus.LikeChanged{TrackID: trackID, UserID: userID, Liked: liked}
		if s.bus != nil && s.busSub != nil {
			s.bus.PublishLikeChanged(e)
			return
		}
		s.applyLike(e)
	}()
}

// applyLike updates the like-set of every copy of the track the engine
// holds.
func (s *serviceImpl) applyLike(e bus.LikeChanged) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	update := func(t catalog.Track) catalog.Track { return t.WithLike(e.UserID, e.Liked) }
	n := s.queue.UpdateTrack(e.TrackID, update)
	if s.current != nil && s.current.ID == e.TrackID {
		t := update(*s.current)
		s.current = &t
		n++
	}
	if n == 0 {
		return
	}
	s.notifyQueueLocked()
	s.saveLocked()
}
