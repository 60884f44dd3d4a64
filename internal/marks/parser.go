// Package marks holds the pure mark-normalization logic: parsing raw
// performance text into comparable numbers, converting hand times to
// FAT-equivalent, and collapsing duplicate submissions. Nothing in this
// package touches the network or the database.
package marks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sliders/internal/domain/entity"
)

const feetToMeters = 0.3048

var (
	// "14.76" or "4:12.31". Minutes are optional; fractional seconds carry
	// up to two digits.
	timePattern = regexp.MustCompile(`^(?:(\d{1,3}):)?(\d{1,2}(?:\.\d{1,2})?)$`)

	// "6-02" or "21-04.5": feet and inches separated by a dash.
	feetInchesPattern = regexp.MustCompile(`^(\d{1,3})-(\d{1,2}(?:\.\d{1,2})?)$`)

	// Plain decimal meters for field events, e.g. "1.88".
	metricPattern = regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3})?)$`)
)

// Mark is the normalized form of a raw performance string. Exactly one of
// Seconds / Metric is set on a successful parse, chosen by the event code.
type Mark struct {
	Seconds *float64 // Time in seconds, for time events.
	Metric  *float64 // Distance or height in meters, for field events.
	Warning string   // Non-fatal issue the caller may choose to reject, e.g. an implausible zero.
}

// Parse converts raw mark text into a normalized Mark for the given event
// code. The event table decides whether the text is a time or a field mark;
// the string shape is never used to guess. A false return means the text
// could not be parsed and the caller should fall back to manual entry.
func Parse(raw string, eventCode string) (Mark, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Mark{}, false
	}

	if entity.IsTimeEvent(eventCode) {
		return parseTime(raw)
	}

	return parseField(raw)
}

func parseTime(raw string) (Mark, bool) {
	m := timePattern.FindStringSubmatch(raw)
	if m == nil {
		return Mark{}, false
	}

	seconds, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Mark{}, false
	}

	if m[1] != "" {
		minutes, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Mark{}, false
		}
		// With a minutes component the seconds part must stay below 60.
		if seconds >= 60 {
			return Mark{}, false
		}
		seconds += minutes * 60
	}

	mark := Mark{Seconds: &seconds}
	if seconds == 0 {
		mark.Warning = "zero time is not a plausible mark for this event"
	}

	return mark, true
}

func parseField(raw string) (Mark, bool) {
	if m := feetInchesPattern.FindStringSubmatch(raw); m != nil {
		feet, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Mark{}, false
		}
		inches, err := strconv.ParseFloat(m[2], 64)
		if err != nil || inches >= 12 {
			return Mark{}, false
		}

		meters := (feet + inches/12) * feetToMeters
		mark := Mark{Metric: &meters}
		if meters == 0 {
			mark.Warning = "zero distance is not a plausible mark for this event"
		}

		return mark, true
	}

	if m := metricPattern.FindStringSubmatch(raw); m != nil {
		meters, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Mark{}, false
		}

		mark := Mark{Metric: &meters}
		if meters == 0 {
			mark.Warning = "zero distance is not a plausible mark for this event"
		}

		return mark, true
	}

	return Mark{}, false
}

// FormatSeconds renders seconds back into the canonical mark text:
// "SS.ss" below one minute, "M:SS.ss" at or above it.
func FormatSeconds(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.2f", seconds)
	}

	minutes := int(seconds) / 60
	rem := seconds - float64(minutes)*60

	return fmt.Sprintf("%d:%05.2f", minutes, rem)
}
