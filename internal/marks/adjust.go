package marks

import (
	"sliders/internal/domain/entity"
)

// AdjustHandTime converts a hand-timed mark to FAT-equivalent seconds.
// The offsets are table-driven per event via the event spec; events outside
// the conversion set and marks already FAT-timed pass through unchanged.
// Offsets are strictly additive, so the result is never below the input.
//
// This is the local fallback for the authoritative remote adjuster: the two
// tables must agree, and a disagreement is a correctness bug covered by
// tests rather than something to reconcile at runtime.
func AdjustHandTime(eventCode string, seconds float64, timing entity.TimingMethod) float64 {
	if timing != entity.TimingHand {
		return seconds
	}

	offset, ok := entity.HandConvertible(eventCode)
	if !ok {
		return seconds
	}

	return seconds + offset
}
