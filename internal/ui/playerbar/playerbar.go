// Package playerbar renders the now-playing bar of the terminal client.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/airwaves/internal/playback"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Now playing and transport only
	ModeExpanded                    // Adds the queue
)

// Notice is the last block or error message shown under the bar.
type Notice struct {
	Text    string
	IsError bool
}

// State holds everything needed to render the player bar.
type State struct {
	Status      playback.Status
	ViewerID    string
	Notice      Notice
	DisplayMode DisplayMode
}

// queueRows is the number of queue entries shown in expanded mode.
const queueRows = 8

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 5 + queueRows // 3 content rows + queue + 2 border rows
	}
	return 5 // 3 content rows + 2 border rows
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0)

	lines := []string{
		nowPlayingLine(s, innerWidth),
		RenderProgressBar(s.Status.Position, s.Status.Duration, innerWidth, symbol(s.Status.State)),
		statusLine(s, innerWidth),
	}
	if s.DisplayMode == ModeExpanded {
		lines = append(lines, queueLines(s.Status, innerWidth)...)
	}

	bar := barStyle().Padding(0, 2).Width(max(width-2, 0)).Render(strings.Join(lines, "\n"))
	if s.Notice.Text == "" {
		return bar
	}
	return bar + "\n" + noticeStyle(s.Notice.IsError).Render(truncate(s.Notice.Text, max(width, 0)))
}

func symbol(st playback.State) string {
	switch st {
	case playback.StatePlaying:
		return playSymbol
	case playback.StatePaused:
		return pauseSymbol
	case playback.StateStopped:
		return stopSymbol
	}
	return stopSymbol
}

func nowPlayingLine(s State, width int) string {
	t := s.Status.CurrentTrack
	if t == nil {
		return metaStyle().Render(truncate("Nothing playing", width))
	}

	title := t.Title
	if title == "" {
		title = "Unknown Track"
	}
	like := ""
	if s.ViewerID != "" && t.LikedBy(s.ViewerID) {
		like = likedStyle().Render("♥") + " "
	}
	artists := strings.Join(t.ArtistNames(), ", ")

	left := truncate(title, width)
	if artists == "" {
		return like + titleStyle().Render(left)
	}
	rest := width - runewidth.StringWidth(left) - 3
	if rest < 5 {
		return like + titleStyle().Render(left)
	}
	return like + titleStyle().Render(left) + "   " + artistStyle().Render(truncate(artists, rest))
}

func statusLine(s State, width int) string {
	st := s.Status

	var left []string
	if st.Context != nil {
		left = append(left, fmt.Sprintf("%s: %s", st.Context.Kind, st.Context.DisplayName))
	}
	if n := len(st.Queue); n > 0 && st.Index >= 0 {
		left = append(left, fmt.Sprintf("%d/%d", st.Index+1, n))
	}

	right := fmt.Sprintf("repeat %s · shuffle %s · vol %3d%%", st.RepeatMode, onOff(st.Shuffle), int(st.Volume*100+0.5))
	return metaStyle().Render(row(truncate(strings.Join(left, " · "), max(width-len(right)-1, 0)), right, width))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// queueLines renders a window of the queue around the current entry.
func queueLines(st playback.Status, width int) []string {
	lines := make([]string, 0, queueRows)
	if len(st.Queue) == 0 {
		lines = append(lines, metaStyle().Render("Queue is empty"))
	}

	start := 0
	if st.Index > queueRows/2 {
		start = min(st.Index-queueRows/2, max(len(st.Queue)-queueRows, 0))
	}
	end := min(start+queueRows, len(st.Queue))

	for i := start; i < end; i++ {
		t := st.Queue[i]
		line := fmt.Sprintf("%3d  %s", i+1, truncate(t.Title, max(width-5, 0)))
		if i == st.Index {
			lines = append(lines, currentRowStyle().Render(line))
			continue
		}
		lines = append(lines, line)
	}
	for len(lines) < queueRows {
		lines = append(lines, "")
	}
	return lines
}
