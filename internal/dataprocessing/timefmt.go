package dataprocessing

import (
	"fmt"
	"math"
)

// FormatClock renders seconds as M:SS with zero-padded seconds, so 125.0
// becomes "2:05". Fractions of a second are dropped.
func FormatClock(seconds float64) string {
	minutes := math.Floor(seconds / 60)
	rest := math.Floor(seconds - minutes*60)
	return fmt.Sprintf("%d:%02d", int(minutes), int(rest))
}
