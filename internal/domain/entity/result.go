// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimingMethod describes how a time-based mark was recorded.
type TimingMethod string

const (
	// TimingFAT is fully automatic timing, the official standard for track events.
	TimingFAT TimingMethod = "fat"
	// TimingHand is manual stopwatch timing, systematically faster than FAT.
	TimingHand TimingMethod = "hand"
	// TimingUnknown means the submitter did not state the timing method.
	TimingUnknown TimingMethod = ""
)

// Season distinguishes indoor and outdoor competition results.
type Season string

const (
	SeasonIndoor  Season = "indoor"
	SeasonOutdoor Season = "outdoor"
)

// ResultStatus is the verification state of a submitted performance.
type ResultStatus string

const (
	// ResultPending is the initial state of every submission.
	ResultPending ResultStatus = "pending"
	// ResultVerified means the mark was approved by an admin or a proof check.
	ResultVerified ResultStatus = "verified"
	// ResultRejected means the mark was reviewed and refused.
	ResultRejected ResultStatus = "rejected"
	// ResultBlocked hides the mark from public display until the owning
	// athlete completes profile verification.
	ResultBlocked ResultStatus = "blocked_until_verified"
)

// ResultSource identifies where a submitted result came from.
type ResultSource string

const (
	SourceDirect      ResultSource = "direct"
	SourceAthleticNet ResultSource = "athleticnet"
	SourceMileSplit   ResultSource = "milesplit"
	SourceOther       ResultSource = "other"
)

// Result is one submitted or verified performance for an athlete.
// Exactly one of MarkSeconds / MarkMetric is meaningful per event type:
// time events carry seconds, field events carry a metric distance or height.
// MarkSecondsAdj is always derived from MarkSeconds and Timing, never
// entered directly.
type Result struct {
	ID             uuid.UUID    // The unique ID for this result row.
	AthleteID      uuid.UUID    // The athlete this performance belongs to.
	EventCode      string       // Canonical event code, e.g. "100m", "110mH", "LJ".
	MarkText       string       // The raw mark text as submitted, e.g. "14.76" or "6-02".
	MarkSeconds    *float64     // Parsed time in seconds. Nil for field events or unparsed marks.
	MarkSecondsAdj *float64     // FAT-equivalent seconds derived from MarkSeconds and Timing.
	MarkMetric     *float64     // Parsed field-event mark in meters. Nil for time events.
	Timing         TimingMethod // How the mark was timed, when known.
	Wind           *float64     // Wind reading in m/s, signed. Nil when not recorded.
	Season         Season       // Indoor or outdoor.
	MeetName       string       // The name of the meet where the mark was set.
	MeetDate       time.Time    // The date of the meet. Only the date component is significant.
	Status         ResultStatus // Current verification state.
	ProofURL       string       // Link to third-party evidence for the mark, if supplied.
	Source         ResultSource // Where this row came from.
	CreatedAt      time.Time    // Timestamp of when this row was submitted.
	UpdatedAt      time.Time    // Timestamp of the last modification to this row.
}

// WindLegal reports whether the mark counts as wind-legal. Marks with no
// wind reading are treated as legal; anything above +2.0 m/s is wind-aided.
func (r *Result) WindLegal() bool {
	return r.Wind == nil || *r.Wind <= 2.0
}
