package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/llehouerou/airwaves/internal/playback"
)

// Forward shows engine events as desktop notices until ctx is done or the
// subscription closes. Each now-playing notice replaces the previous one.
func Forward(ctx context.Context, sub *playback.Subscription, n Notifier, log zerolog.Logger) error {
	var nowPlaying uint32

	show := func(notice Notice) uint32 {
		id, err := n.Show(notice)
		if err != nil {
			log.Debug().Err(err).Str("title", notice.Title).Msg("notice not shown")
			return 0
		}
		return id
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sub.Done:
			return nil

		case e := <-sub.TrackChanged:
			if e.Current != nil {
				nowPlaying = show(NowPlaying(*e.Current, nowPlaying))
			}
		case e := <-sub.Blocked:
			show(Blocked(e))
		case e := <-sub.Error:
			show(Failed(e))
		}
	}
}
