package marks

import (
	"math"
	"sort"
	"strings"

	"sliders/internal/domain/entity"
)

// Duplicate-mark tolerances. Hand-entered and scraped marks for the same
// performance can differ in trailing precision, so marks are compared with
// a small epsilon instead of exact equality.
const (
	epsilonShortTime = 0.01 // Times under a minute.
	epsilonLongTime  = 0.05 // Times of a minute or more.
	epsilonField     = 0.01 // Field marks, in meters.
)

// Dedupe collapses rows representing the same real-world performance into
// one canonical row per duplicate group. Two rows are duplicates when they
// share athlete, event and meet date (date only) and carry equal or
// near-equal marks. The input is not mutated and the result is fully
// determined by the row multiset: any permutation of the same input yields
// the same surviving rows in the same order.
func Dedupe(rows []*entity.Result) []*entity.Result {
	groups := make(map[string][]*entity.Result)
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		key := groupKey(row)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	// Group iteration order must not depend on input order.
	sort.Strings(order)

	out := make([]*entity.Result, 0, len(rows))
	for _, key := range order {
		out = append(out, dedupeGroup(groups[key])...)
	}

	return out
}

// groupKey buckets rows by athlete, event and meet date, ignoring time-of-day.
func groupKey(row *entity.Result) string {
	return row.AthleteID.String() + "|" + row.EventCode + "|" + row.MeetDate.Format("2006-01-02")
}

// dedupeGroup clusters near-equal marks within one (athlete, event, date)
// bucket and keeps the preferred row of each cluster.
func dedupeGroup(rows []*entity.Result) []*entity.Result {
	// Sort by mark value first so clustering is independent of input order;
	// the ID tiebreak makes the order total.
	sorted := make([]*entity.Result, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		vi, oki := comparableMark(sorted[i])
		vj, okj := comparableMark(sorted[j])
		switch {
		case oki && okj && vi != vj:
			return vi < vj
		case oki != okj:
			return oki
		}
		if ti, tj := strings.TrimSpace(sorted[i].MarkText), strings.TrimSpace(sorted[j].MarkText); ti != tj {
			return ti < tj
		}

		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	var survivors []*entity.Result
	var cluster []*entity.Result

	flush := func() {
		if len(cluster) > 0 {
			survivors = append(survivors, pickSurvivor(cluster))
			cluster = nil
		}
	}

	for _, row := range sorted {
		if len(cluster) == 0 || !sameMark(cluster[0], row) {
			flush()
		}
		cluster = append(cluster, row)
	}
	flush()

	return survivors
}

// sameMark reports whether two rows carry the same performance value.
// Rows with numeric marks compare within the event-class epsilon; rows
// without any numeric mark compare by trimmed raw text.
func sameMark(a, b *entity.Result) bool {
	va, oka := comparableMark(a)
	vb, okb := comparableMark(b)

	if oka != okb {
		return false
	}
	if !oka {
		return strings.TrimSpace(a.MarkText) == strings.TrimSpace(b.MarkText)
	}

	// A pair straddling the one-minute boundary gets the looser of the two
	// tolerances so the comparison is symmetric.
	return math.Abs(va-vb) <= math.Max(epsilonFor(a), epsilonFor(b))
}

// comparableMark returns the numeric value used for duplicate comparison:
// adjusted seconds when present, then raw seconds, then the metric mark.
func comparableMark(row *entity.Result) (float64, bool) {
	switch {
	case row.MarkSecondsAdj != nil:
		return *row.MarkSecondsAdj, true
	case row.MarkSeconds != nil:
		return *row.MarkSeconds, true
	case row.MarkMetric != nil:
		return *row.MarkMetric, true
	}

	return 0, false
}

func epsilonFor(row *entity.Result) float64 {
	if !entity.IsTimeEvent(row.EventCode) {
		return epsilonField
	}
	if v, ok := comparableMark(row); ok && v >= 60 {
		return epsilonLongTime
	}

	return epsilonShortTime
}

// pickSurvivor applies the tie-break: verified beats pending, then a
// non-empty proof URL, then the most recently created row. The ID is the
// final tiebreak so the choice is total and deterministic.
func pickSurvivor(cluster []*entity.Result) *entity.Result {
	best := cluster[0]
	for _, row := range cluster[1:] {
		if preferred(row, best) {
			best = row
		}
	}

	return best
}

func preferred(a, b *entity.Result) bool {
	av, bv := a.Status == entity.ResultVerified, b.Status == entity.ResultVerified
	if av != bv {
		return av
	}

	ap, bp := a.ProofURL != "", b.ProofURL != ""
	if ap != bp {
		return ap
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}

	return a.ID.String() > b.ID.String()
}
