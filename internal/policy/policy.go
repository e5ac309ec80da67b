// Package policy decides whether a track may be played by a viewer.
//
// The gate is pure: it never mutates its inputs and has no side effects.
// Callers decide how to surface a block (notice, silent skip).
package policy

import (
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/airwaves/internal/catalog"
)

// Suspension holds account suspension metadata.
type Suspension struct {
	Reason    string     `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Viewer is the logged-in user as seen by the gate.
// A nil *Viewer means nobody is logged in.
type Viewer struct {
	ID          string     `json:"id"`
	IsMinor     bool       `json:"isMinor"`
	IsSuspended bool       `json:"isSuspended"`
	Suspension  Suspension `json:"suspension"`
}

// Reason identifies why a track was blocked.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonHidden        Reason = "hidden"
	ReasonSuspended     Reason = "suspended"
	ReasonAgeRestricted Reason = "age_restricted"
)

// DefaultHiddenReason is used when a moderated track carries no reason.
const DefaultHiddenReason = "This track has been removed by moderation."

// Decision is the result of a gate check.
type Decision struct {
	Allowed bool
	Reason  Reason
	Detail  string // moderation reason for hidden tracks
}

// Allow returns an allowed decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Block returns a blocked decision with the given reason.
func Block(reason Reason, detail string) Decision {
	return Decision{Allowed: false, Reason: reason, Detail: detail}
}

// IsPlayable evaluates the rules in order: moderation-hidden, suspended
// viewer, minor viewer with explicit track.
func IsPlayable(t catalog.Track, v *Viewer) Decision {
	if t.IsHidden {
		detail := t.HiddenReason
		if detail == "" {
			detail = DefaultHiddenReason
		}
		return Block(ReasonHidden, detail)
	}
	if v == nil {
		return Allow()
	}
	if v.IsSuspended {
		return Block(ReasonSuspended, "")
	}
	if v.IsMinor && t.IsExplicit {
		return Block(ReasonAgeRestricted, "")
	}
	return Allow()
}

// Allowed is a shorthand for IsPlayable(t, v).Allowed.
func Allowed(t catalog.Track, v *Viewer) bool {
	return IsPlayable(t, v).Allowed
}

// FilterQueue returns the playable tracks in their original order.
func FilterQueue(tracks []catalog.Track, v *Viewer) []catalog.Track {
	return lo.Filter(tracks, func(t catalog.Track, _ int) bool {
		return Allowed(t, v)
	})
}

// FirstPlayable returns the index of the first playable track at or after
// from, or -1 if there is none.
func FirstPlayable(tracks []catalog.Track, from int, v *Viewer) int {
	for i := max(from, 0); i < len(tracks); i++ {
		if Allowed(tracks[i], v) {
			return i
		}
	}
	return -1
}
