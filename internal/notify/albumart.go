//go:build linux

package notify

import (
	"strings"

	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/mpris"
)

// trackIcon returns a local album art URI for a track, if found. Remote
// cover URLs are not used since notification servers only load local files.
func trackIcon(t catalog.Track) string {
	if art := mpris.ArtURL(t); strings.HasPrefix(art, "file://") {
		return art
	}
	return ""
}
