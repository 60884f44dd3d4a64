package marks

import (
	"math/rand"
	"testing"
	"time"

	"sliders/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func testResult(athlete uuid.UUID, event string, date time.Time, mutate func(*entity.Result)) *entity.Result {
	row := &entity.Result{
		ID:        uuid.New(),
		AthleteID: athlete,
		EventCode: event,
		MeetDate:  date,
		Status:    entity.ResultPending,
		CreatedAt: date,
	}
	if mutate != nil {
		mutate(row)
	}

	return row
}

func TestDedupe_NearEqualMarksCollapse(t *testing.T) {
	athlete := uuid.New()
	date := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	scraped := testResult(athlete, "100m", date, func(r *entity.Result) {
		r.MarkText = "11.21"
		r.MarkSeconds = f64(11.21)
		r.ProofURL = "https://www.athletic.net/result/123"
	})
	handEntered := testResult(athlete, "100m", date, func(r *entity.Result) {
		r.MarkText = "11.2"
		r.MarkSeconds = f64(11.2)
	})

	out := Dedupe([]*entity.Result{handEntered, scraped})
	require.Len(t, out, 1)
	// Equal status, so the row with a proof URL survives.
	assert.Equal(t, scraped.ID, out[0].ID)
}

func TestDedupe_DistinctMarksSurvive(t *testing.T) {
	athlete := uuid.New()
	date := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	heat := testResult(athlete, "100m", date, func(r *entity.Result) {
		r.MarkSeconds = f64(11.21)
	})
	final := testResult(athlete, "100m", date, func(r *entity.Result) {
		r.MarkSeconds = f64(11.05)
	})

	out := Dedupe([]*entity.Result{heat, final})
	assert.Len(t, out, 2)
}

func TestDedupe_MinuteBoundaryUsesLooserTolerance(t *testing.T) {
	// 400m is a stand-in for any event where times straddle one minute.
	// 59.99 picks the short-time epsilon, 60.04 the long-time one; the
	// comparison must use the looser of the two in both orders.
	athlete := uuid.New()
	date := time.Date(2026, 4, 18, 0, 0, 0, 0, time.UTC)

	under := testResult(athlete, "400m", date, func(r *entity.Result) {
		r.MarkSeconds = f64(59.99)
		r.ProofURL = "https://www.athletic.net/result/456"
	})
	over := testResult(athlete, "400m", date, func(r *entity.Result) {
		r.MarkSeconds = f64(60.04)
	})

	out := Dedupe([]*entity.Result{under, over})
	require.Len(t, out, 1)

	out = Dedupe([]*entity.Result{over, under})
	require.Len(t, out, 1)
	// The proof-backed row survives either way.
	assert.Equal(t, under.ID, out[0].ID)
}

func TestDedupe_TimeOfDayIgnored(t *testing.T) {
	athlete := uuid.New()
	morning := time.Date(2026, 4, 18, 9, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 4, 18, 19, 0, 0, 0, time.UTC)

	a := testResult(athlete, "200m", morning, func(r *entity.Result) {
		r.MarkSeconds = f64(22.84)
	})
	b := testResult(athlete, "200m", evening, func(r *entity.Result) {
		r.MarkSeconds = f64(22.84)
	})

	out := Dedupe([]*entity.Result{a, b})
	assert.Len(t, out, 1)
}

func TestDedupe_VerifiedBeatsPendingWithProof(t *testing.T) {
	athlete := uuid.New()
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	verified := testResult(athlete, "400m", date, func(r *entity.Result) {
		r.MarkSeconds = f64(49.31)
		r.Status = entity.ResultVerified
	})
	pendingWithProof := testResult(athlete, "400m", date, func(r *entity.Result) {
		r.MarkSeconds = f64(49.31)
		r.ProofURL = "https://tx.milesplit.com/meets/1"
		r.CreatedAt = date.Add(time.Hour)
	})

	out := Dedupe([]*entity.Result{pendingWithProof, verified})
	require.Len(t, out, 1)
	assert.Equal(t, verified.ID, out[0].ID)
}

func TestDedupe_NewestWinsAmongEqualTies(t *testing.T) {
	athlete := uuid.New()
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	older := testResult(athlete, "800m", date, func(r *entity.Result) {
		r.MarkSeconds = f64(118.4)
		r.CreatedAt = date
	})
	newer := testResult(athlete, "800m", date, func(r *entity.Result) {
		r.MarkSeconds = f64(118.4)
		r.CreatedAt = date.Add(2 * time.Hour)
	})

	out := Dedupe([]*entity.Result{older, newer})
	require.Len(t, out, 1)
	assert.Equal(t, newer.ID, out[0].ID)
}

func TestDedupe_OrderIndependentAndIdempotent(t *testing.T) {
	athlete := uuid.New()
	other := uuid.New()
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	rows := []*entity.Result{
		testResult(athlete, "100m", date, func(r *entity.Result) { r.MarkSeconds = f64(11.21) }),
		testResult(athlete, "100m", date, func(r *entity.Result) {
			r.MarkSeconds = f64(11.21)
			r.Status = entity.ResultVerified
		}),
		testResult(athlete, "100m", date, func(r *entity.Result) { r.MarkSeconds = f64(10.98) }),
		testResult(athlete, "LJ", date, func(r *entity.Result) { r.MarkMetric = f64(6.52) }),
		testResult(athlete, "LJ", date, func(r *entity.Result) { r.MarkMetric = f64(6.52) }),
		testResult(other, "100m", date, func(r *entity.Result) { r.MarkSeconds = f64(11.21) }),
	}

	baseline := Dedupe(rows)
	baselineIDs := make([]uuid.UUID, 0, len(baseline))
	for _, row := range baseline {
		baselineIDs = append(baselineIDs, row.ID)
	}

	rng := rand.New(rand.NewSource(1))
	for range 20 {
		shuffled := make([]*entity.Result, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		out := Dedupe(shuffled)
		require.Len(t, out, len(baseline))
		for i, row := range out {
			assert.Equal(t, baselineIDs[i], row.ID)
		}
	}

	// dedupe(dedupe(rows)) == dedupe(rows)
	again := Dedupe(baseline)
	require.Len(t, again, len(baseline))
	for i, row := range again {
		assert.Equal(t, baselineIDs[i], row.ID)
	}
}

func TestDedupe_DoesNotMutateInput(t *testing.T) {
	athlete := uuid.New()
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	a := testResult(athlete, "100m", date, func(r *entity.Result) { r.MarkSeconds = f64(11.21) })
	b := testResult(athlete, "100m", date, func(r *entity.Result) { r.MarkSeconds = f64(11.21) })
	input := []*entity.Result{a, b}
	snapshotA, snapshotB := *a, *b

	_ = Dedupe(input)

	assert.Equal(t, snapshotA, *a)
	assert.Equal(t, snapshotB, *b)
	assert.Equal(t, []*entity.Result{a, b}, input)
}

func TestDedupe_RowsWithoutNumericMarks(t *testing.T) {
	athlete := uuid.New()
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	a := testResult(athlete, "100m", date, func(r *entity.Result) { r.MarkText = "DNF" })
	b := testResult(athlete, "100m", date, func(r *entity.Result) { r.MarkText = "DNF" })
	c := testResult(athlete, "100m", date, func(r *entity.Result) { r.MarkText = "DQ" })

	out := Dedupe([]*entity.Result{a, b, c})
	assert.Len(t, out, 2)
}
