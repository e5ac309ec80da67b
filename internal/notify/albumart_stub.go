//go:build !linux

package notify

import "github.com/llehouerou/airwaves/internal/catalog"

// trackIcon returns empty on non-Linux platforms.
// Desktop notifications are only supported on Linux via D-Bus.
func trackIcon(_ catalog.Track) string {
	return ""
}
