package player

import "math"

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale where Volume is in "decibels" with base 2.
// Volume = 0 means no change, -1 = half volume, -2 = quarter, etc.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> silent
func levelToVolume(level float64) (volume float64, silent bool) {
	if level <= 0 {
		return -10, true
	}
	if level >= 1 {
		return 0, false
	}
	return math.Log2(level), false
}
