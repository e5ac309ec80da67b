package app

import "time"

// TickMsg is sent periodically to update the progress bar.
type TickMsg time.Time

// ServiceChangedMsg is sent when the engine reports a state change.
type ServiceChangedMsg struct{}

// ServiceBlockedMsg is sent when the engine refuses a track.
type ServiceBlockedMsg struct {
	Message string
}

// ServiceErrorMsg is sent when an engine action fails.
type ServiceErrorMsg struct {
	Message string
}

// ServiceClosedMsg is sent when the engine shuts down.
type ServiceClosedMsg struct{}
