// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackResume Op = "resume playback"
	OpPlaybackSeek   Op = "seek"
	OpTrackLoad      Op = "load track"

	// Queue operations
	OpQueueSet    Op = "play queue"
	OpQueueAdd    Op = "add to queue"
	OpQueueRemove Op = "remove from queue"

	// Social operations
	OpLikeToggle Op = "update like"
	OpPlayCount  Op = "record play"

	// Persistence operations
	OpStateLoad Op = "load playback state"
	OpStateSave Op = "save playback state"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
