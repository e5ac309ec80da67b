// Package state persists the per-viewer playback snapshot.
package state

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/airwaves/internal/catalog"
)

// ErrCorruptSnapshot is returned by Load when a stored record cannot be
// decoded. Callers treat it as "no snapshot".
var ErrCorruptSnapshot = errors.New("corrupt playback snapshot")

// Snapshot is the serialized playback state of one viewer.
//
// Detached is set when CurrentTrack was removed from Items while playing.
// CurrentIndex is then the entry the next advance lands on, and may equal
// len(Items).
type Snapshot struct {
	CurrentTrack    *catalog.Track           `json:"currentTrack"`
	Items           []catalog.Track          `json:"items"`
	CurrentIndex    int                      `json:"currentIndex"`
	Detached        bool                     `json:"detached,omitempty"`
	Volume          float64                  `json:"volume"`
	RepeatMode      string                   `json:"repeatMode"`
	Shuffle         bool                     `json:"shuffle"`
	PositionSeconds float64                  `json:"positionSeconds"`
	Context         *catalog.PlaybackContext `json:"context,omitempty"`
}

// Store reads and writes snapshots by viewer id.
// Load returns (nil, nil) when the viewer has no snapshot.
type Store interface {
	Load(ctx context.Context, viewerID string) (*Snapshot, error)
	Save(ctx context.Context, viewerID string, snap Snapshot) error
	Remove(ctx context.Context, viewerID string) error
}

// KeyFunc derives the storage key for a viewer id.
type KeyFunc func(viewerID string) string

// DefaultKeyPrefix is the prefix used by PrefixKey when none is configured.
const DefaultKeyPrefix = "playerState_"

// PrefixKey returns a KeyFunc that prepends prefix to the viewer id.
func PrefixKey(prefix string) KeyFunc {
	return func(viewerID string) string {
		return prefix + viewerID
	}
}

func encode(snap Snapshot) (string, error) {
	b, err := json.Marshal(snap)
	if err != nil {
		return "", errors.Wrap(err, "encode snapshot")
	}
	return string(b), nil
}

func decode(raw string) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "decode snapshot: %v", err)
	}
	return &snap, nil
}
