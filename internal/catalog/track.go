// Package catalog holds the track model shared by the playback engine and the
// client for the remote catalog/social service.
package catalog

import "github.com/samber/lo"

// ArtistRef is a reference to an artist profile.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is a playable catalog entry. The engine treats it as immutable
// except for Likes, which is updated out-of-band.
type Track struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	AudioURL     string      `json:"audioUrl"`
	CoverURL     string      `json:"coverUrl,omitempty"`
	Artists      []ArtistRef `json:"artists,omitempty"`
	Likes        []string    `json:"likes,omitempty"` // user ids, set semantics
	IsExplicit   bool        `json:"isExplicit"`
	IsHidden     bool        `json:"isHidden"`
	HiddenReason string      `json:"hiddenReason,omitempty"`
}

// LikedBy reports whether userID is in the like-set.
func (t Track) LikedBy(userID string) bool {
	return lo.Contains(t.Likes, userID)
}

// WithLike returns a copy of the track with userID added to or removed from
// the like-set.
func (t Track) WithLike(userID string, liked bool) Track {
	likes := lo.Without(t.Likes, userID)
	if liked {
		likes = append(likes, userID)
	}
	t.Likes = likes
	return t
}

// ArtistNames returns the artist display names in order.
func (t Track) ArtistNames() []string {
	return lo.Map(t.Artists, func(a ArtistRef, _ int) string { return a.Name })
}

// ContextKind identifies where a queue was sourced from.
type ContextKind string

const (
	ContextAlbum    ContextKind = "album"
	ContextPlaylist ContextKind = "playlist"
	ContextProfile  ContextKind = "profile"
)

// PlaybackContext tags the page a queue came from. It is only used for
// back-navigation in the UI and never affects ordering.
type PlaybackContext struct {
	Kind        ContextKind `json:"kind"`
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
}
