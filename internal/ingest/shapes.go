package ingest

import (
	"encoding/json"
	"strings"

	"sliders/internal/domain/entity"
)

// Parsed is the canonical record every upstream parser payload is coerced
// into. A Parsed is considered valid when Event is present and at least one
// of MarkText / MarkSeconds is present.
type Parsed struct {
	Event       string
	MarkText    string
	MarkSeconds *float64
	Timing      entity.TimingMethod
	Wind        *float64
	MeetName    string
	MeetDate    string // "YYYY-MM-DD" when the upstream parser supplies it.
	Confidence  *float64
}

// Valid reports whether the record meets the minimum bar for a successful
// parse.
func (p *Parsed) Valid() bool {
	return p != nil && p.Event != "" && (p.MarkText != "" || p.MarkSeconds != nil)
}

// The upstream parser endpoints evolve independently and do not agree on a
// single field-naming scheme. Each known payload shape gets its own struct
// and coercion function so the accepted variants stay auditable, instead of
// probing arbitrary field names at runtime.

// camelShape is the current payload emitted by the Athletic.net parser.
type camelShape struct {
	Event       string   `json:"event"`
	MarkText    string   `json:"markText"`
	MarkSeconds *float64 `json:"markSeconds"`
	Timing      string   `json:"timing"`
	Wind        *float64 `json:"wind"`
	MeetName    string   `json:"meetName"`
	MeetDate    string   `json:"meetDate"`
	Confidence  *float64 `json:"confidence"`
}

func (s camelShape) coerce() *Parsed {
	return &Parsed{
		Event:       s.Event,
		MarkText:    s.MarkText,
		MarkSeconds: s.MarkSeconds,
		Timing:      coerceTiming(s.Timing),
		Wind:        s.Wind,
		MeetName:    s.MeetName,
		MeetDate:    s.MeetDate,
		Confidence:  s.Confidence,
	}
}

// snakeShape is the payload emitted by the MileSplit parser.
type snakeShape struct {
	Event       string   `json:"event"`
	MarkText    string   `json:"mark_text"`
	MarkSeconds *float64 `json:"mark_seconds"`
	Timing      string   `json:"timing_method"`
	Wind        *float64 `json:"wind_ms"`
	MeetName    string   `json:"meet_name"`
	MeetDate    string   `json:"meet_date"`
	Confidence  *float64 `json:"confidence"`
}

func (s snakeShape) coerce() *Parsed {
	return &Parsed{
		Event:       s.Event,
		MarkText:    s.MarkText,
		MarkSeconds: s.MarkSeconds,
		Timing:      coerceTiming(s.Timing),
		Wind:        s.Wind,
		MeetName:    s.MeetName,
		MeetDate:    s.MeetDate,
		Confidence:  s.Confidence,
	}
}

// legacyShape is the original parser payload, still emitted by the oldest
// verification endpoint.
type legacyShape struct {
	Event       string   `json:"event"`
	Mark        string   `json:"mark"`
	TimeSeconds *float64 `json:"time_seconds"`
	Meet        string   `json:"meet"`
	Date        string   `json:"date"`
}

func (s legacyShape) coerce() *Parsed {
	return &Parsed{
		Event:       s.Event,
		MarkText:    s.Mark,
		MarkSeconds: s.TimeSeconds,
		MeetName:    s.Meet,
		MeetDate:    s.Date,
	}
}

func coerceTiming(raw string) entity.TimingMethod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fat", "auto", "automatic":
		return entity.TimingFAT
	case "hand", "manual":
		return entity.TimingHand
	}

	return entity.TimingUnknown
}

// Coerce normalizes a raw parser payload into the canonical Parsed record.
// Shapes are tried newest-first; the first decode that clears the validity
// bar wins. A false return means no known shape produced a valid record,
// which callers treat as a failed attempt rather than a fatal error.
func Coerce(raw json.RawMessage) (*Parsed, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var camel camelShape
	if err := json.Unmarshal(raw, &camel); err == nil {
		if parsed := camel.coerce(); parsed.Valid() {
			return parsed, true
		}
	}

	var snake snakeShape
	if err := json.Unmarshal(raw, &snake); err == nil {
		if parsed := snake.coerce(); parsed.Valid() {
			return parsed, true
		}
	}

	var legacy legacyShape
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if parsed := legacy.coerce(); parsed.Valid() {
			return parsed, true
		}
	}

	return nil, false
}
