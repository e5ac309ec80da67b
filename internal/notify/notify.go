// Package notify shows playback notices as desktop notifications.
package notify

import (
	"strings"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/playback"
)

// Kind is the kind of playback notice.
type Kind int

const (
	KindNowPlaying Kind = iota
	KindBlocked
	KindError
)

// Urgency is the freedesktop urgency level a notice is sent with.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Urgency returns the urgency notices of kind k are shown with.
func (k Kind) Urgency() Urgency {
	switch k {
	case KindBlocked:
		return UrgencyNormal
	case KindError:
		return UrgencyCritical
	default:
		return UrgencyLow
	}
}

// Timeout returns how long notices of kind k stay up, in ms.
func (k Kind) Timeout() int32 {
	switch k {
	case KindBlocked:
		return 6000
	case KindError:
		return 8000
	default:
		return 4000
	}
}

// Notice is one desktop notification.
type Notice struct {
	Kind  Kind
	Title string
	Body  string
	Icon  string // file:// URI or icon name

	// ReplacesID is the id of the notice this one takes the place of, or 0.
	ReplacesID uint32
}

// Notifier shows notices.
type Notifier interface {
	// Show displays n and returns its id. Without a notification server it
	// returns 0 and no error.
	Show(n Notice) (uint32, error)
	Dismiss(id uint32) error
}

// nopNotifier drops every notice.
type nopNotifier struct{}

func (nopNotifier) Show(Notice) (uint32, error) { return 0, nil }
func (nopNotifier) Dismiss(uint32) error        { return nil }

// NowPlaying returns the notice for t becoming the current track. It
// replaces the previous now-playing notice when replaces is set.
func NowPlaying(t catalog.Track, replaces uint32) Notice {
	return Notice{
		Kind:       KindNowPlaying,
		Title:      t.Title,
		Body:       strings.Join(t.ArtistNames(), ", "),
		Icon:       trackIcon(t),
		ReplacesID: replaces,
	}
}

// Blocked returns the notice for a track the content policy kept from
// playing.
func Blocked(e playback.BlockedEvent) Notice {
	return Notice{
		Kind:  KindBlocked,
		Title: "Can't play " + e.Track.Title,
		Body:  e.Message,
	}
}

// Failed returns the notice for a failed playback action.
func Failed(e playback.ErrorEvent) Notice {
	return Notice{
		Kind:  KindError,
		Title: "Playback error",
		Body:  e.Message(),
	}
}
