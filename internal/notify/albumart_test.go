//go:build linux

package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/llehouerou/airwaves/internal/catalog"
)

func TestTrackIcon(t *testing.T) {
	dir := t.TempDir()
	trackPath := filepath.Join(dir, "01-song.mp3")

	// No cover yet
	if got := trackIcon(catalog.Track{AudioURL: trackPath}); got != "" {
		t.Errorf("trackIcon() = %q, want empty", got)
	}

	coverPath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(coverPath, []byte{0xFF, 0xD8, 0xFF}, 0o600); err != nil {
		t.Fatal(err)
	}

	if got := trackIcon(catalog.Track{AudioURL: trackPath}); got != "file://"+coverPath {
		t.Errorf("trackIcon() = %q, want %q", got, "file://"+coverPath)
	}
}

func TestTrackIconIgnoresRemoteCover(t *testing.T) {
	tr := catalog.Track{AudioURL: "https://cdn.example/a.mp3", CoverURL: "https://img.example/a.jpg"}
	if got := trackIcon(tr); got != "" {
		t.Errorf("trackIcon() = %q, want empty", got)
	}
}
