//go:build linux

package mpris

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/airwaves/internal/catalog"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// ArtURL returns the art URL for a track: its cover locator, or a cover
// file next to a local audio file.
func ArtURL(t catalog.Track) string {
	if t.CoverURL != "" {
		return t.CoverURL
	}
	path, ok := localPath(t.AudioURL)
	if !ok {
		return ""
	}
	if art := FindAlbumArt(path); art != "" {
		return "file://" + art
	}
	return ""
}

func localPath(source string) (string, bool) {
	if strings.HasPrefix(source, "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return "", false
		}
		return u.Path, true
	}
	if strings.Contains(source, "://") || source == "" {
		return "", false
	}
	return source, true
}

// FindAlbumArt looks for album art in the same directory as the track.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
