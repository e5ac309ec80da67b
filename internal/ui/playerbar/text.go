package playerbar

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// sanitize drops control characters so that bad metadata cannot break the
// terminal.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' {
			return ' '
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)
}

// truncate shortens s to maxWidth cells, ending with an ellipsis when cut.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(sanitize(s), maxWidth, "…")
}

// row places left and right at either end of a line of the given width.
func row(left, right string, width int) string {
	gap := max(width-runewidth.StringWidth(left)-runewidth.StringWidth(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
