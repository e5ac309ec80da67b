package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/rs/zerolog"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/playback"
	"github.com/llehouerou/airwaves/internal/player"
	"github.com/llehouerou/airwaves/internal/playlist"
	"github.com/llehouerou/airwaves/internal/policy"
)

// recorder is a Notifier that keeps every notice it is shown.
type recorder struct {
	mu     sync.Mutex
	sent   []Notice
	nextID uint32
	err    error
}

func (r *recorder) Show(n Notice) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.nextID++
	return r.nextID, nil
}

func (r *recorder) Dismiss(_ uint32) error { return nil }

func (r *recorder) Sent() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.sent...)
}

func newEngine(t *testing.T) playback.Service {
	t.Helper()
	nop := zerolog.Nop()
	s := playback.New(player.NewMock(), playlist.NewQueue(), playback.Options{Logger: &nop})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func song(id, title string) catalog.Track {
	return catalog.Track{
		ID:       id,
		Title:    title,
		AudioURL: "https://cdn.example/" + id + ".mp3",
		Artists:  []catalog.ArtistRef{{ID: "ar", Name: "Daft Punk"}},
	}
}

func TestForward_NowPlayingReplacesPrevious(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := newEngine(t)
		r := &recorder{}
		ctx, cancel := context.WithCancel(context.Background())
		sub := s.Subscribe()
		done := make(chan error, 1)
		go func() { done <- Forward(ctx, sub, r, zerolog.Nop()) }()

		s.PlayQueue([]catalog.Track{song("a", "One More Time"), song("b", "Aerodynamic")}, 0, nil)
		synctest.Wait()
		s.SkipNext()
		synctest.Wait()
		cancel()

		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("Forward() = %v, want context.Canceled", err)
		}
		sent := r.Sent()
		if len(sent) != 2 {
			t.Fatalf("showed %d notices, want 2", len(sent))
		}
		if sent[0].Title != "One More Time" || sent[0].Body != "Daft Punk" || sent[0].ReplacesID != 0 {
			t.Errorf("first = %+v", sent[0])
		}
		if sent[1].Title != "Aerodynamic" || sent[1].ReplacesID != 1 {
			t.Errorf("second = %+v, want replace of id 1", sent[1])
		}
	})
}

func TestForward_BlockedNotice(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := newEngine(t)
		s.ApplyViewer(policy.Viewer{ID: "kid", IsMinor: true})
		r := &recorder{}
		sub := s.Subscribe()
		go func() { _ = Forward(context.Background(), sub, r, zerolog.Nop()) }()

		x := song("x", "Explicit Song")
		x.IsExplicit = true
		s.PlayTrack(x, nil)
		synctest.Wait()
		_ = s.Close()
		synctest.Wait()

		sent := r.Sent()
		if len(sent) != 1 {
			t.Fatalf("showed %d notices, want 1", len(sent))
		}
		if sent[0].Title != "Can't play Explicit Song" || sent[0].Body == "" || sent[0].Kind != KindBlocked {
			t.Errorf("notice = %+v", sent[0])
		}
	})
}

func TestForward_ErrorNotice(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := newEngine(t)
		r := &recorder{}
		sub := s.Subscribe()
		go func() { _ = Forward(context.Background(), sub, r, zerolog.Nop()) }()

		s.PlayTrack(catalog.Track{ID: "broken", Title: "Broken"}, nil)
		synctest.Wait()
		_ = s.Close()
		synctest.Wait()

		sent := r.Sent()
		if len(sent) == 0 {
			t.Fatal("no notification sent")
		}
		last := sent[len(sent)-1]
		if last.Title != "Playback error" || last.Kind != KindError {
			t.Errorf("notice = %+v", last)
		}
	})
}

func TestForward_StopsWhenSubscriptionCloses(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := newEngine(t)
		r := &recorder{err: errors.New("no notification server")}
		sub := s.Subscribe()
		done := make(chan error, 1)
		go func() { done <- Forward(context.Background(), sub, r, zerolog.Nop()) }()

		s.PlayTrack(song("a", "A"), nil)
		synctest.Wait()
		_ = s.Close()

		if err := <-done; err != nil {
			t.Errorf("Forward() = %v, want nil", err)
		}
	})
}
