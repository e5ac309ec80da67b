//go:build !linux

package mpris

import (
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/airwaves/internal/playback"
)

// ErrUnsupported is returned by New where there is no session D-Bus to
// publish the player on.
var ErrUnsupported = errors.New("mpris needs a D-Bus session")

// Adapter is never constructed off Linux.
type Adapter struct{}

// New reports ErrUnsupported. The engine runs without media keys.
func New(_ playback.Service) (*Adapter, error) {
	return nil, ErrUnsupported
}

func (a *Adapter) Close() error { return nil }
