package policy

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Messages holds the user-facing text for each block reason.
type Messages struct {
	Hidden        string
	Suspended     string
	AgeRestricted string
}

// DefaultMessages returns the built-in block texts.
func DefaultMessages() Messages {
	return Messages{
		Hidden:        DefaultHiddenReason,
		Suspended:     "Your account is suspended. Playback is unavailable.",
		AgeRestricted: "This track contains explicit content and is not available on your account.",
	}
}

// Text returns the message to show for a blocked decision.
// Suspension expiry, when known, is appended in humanized form.
func (m Messages) Text(d Decision, v *Viewer) string {
	switch d.Reason {
	case ReasonNone:
		return ""
	case ReasonHidden:
		if d.Detail != "" {
			return d.Detail
		}
		return m.Hidden
	case ReasonSuspended:
		text := m.Suspended
		if v != nil && v.Suspension.ExpiresAt != nil && v.Suspension.ExpiresAt.After(time.Now()) {
			text += " Suspension ends " + humanize.Time(*v.Suspension.ExpiresAt) + "."
		}
		return text
	case ReasonAgeRestricted:
		return m.AgeRestricted
	}
	return ""
}
