package playlist

// RepeatMode defines what happens when the queue runs out.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota // stop at the end
	RepeatAll                   // wrap to the start
	RepeatOne                   // restart the current track
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// Next returns the following mode in the off → all → one → off cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// ParseRepeatMode converts a persisted name back to a mode.
// Unknown values map to RepeatOff.
func ParseRepeatMode(s string) RepeatMode {
	switch s {
	case "all":
		return RepeatAll
	case "one":
		return RepeatOne
	default:
		return RepeatOff
	}
}
