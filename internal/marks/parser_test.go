package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TimeEvents(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		event   string
		seconds float64
	}{
		{"sprint hundredths", "14.76", "100m", 14.76},
		{"sprint tenths", "11.2", "100m", 11.2},
		{"whole seconds", "53", "400m", 53},
		{"minutes and seconds", "4:12.31", "1600m", 252.31},
		{"two-digit minutes", "10:05.20", "3200m", 605.20},
		{"hurdles", "15.04", "110mH", 15.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mark, ok := Parse(tt.raw, tt.event)
			require.True(t, ok)
			require.NotNil(t, mark.Seconds)
			assert.InDelta(t, tt.seconds, *mark.Seconds, 1e-9)
			assert.Nil(t, mark.Metric)
			assert.Empty(t, mark.Warning)
		})
	}
}

func TestParse_FieldEvents(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		event  string
		meters float64
	}{
		{"feet and inches", "6-02", "HJ", (6 + 2.0/12) * 0.3048},
		{"feet with fractional inches", "21-04.5", "LJ", (21 + 4.5/12) * 0.3048},
		{"plain meters", "1.88", "HJ", 1.88},
		{"throw meters", "52.40", "DT", 52.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mark, ok := Parse(tt.raw, tt.event)
			require.True(t, ok)
			require.NotNil(t, mark.Metric)
			assert.InDelta(t, tt.meters, *mark.Metric, 1e-9)
			assert.Nil(t, mark.Seconds)
		})
	}
}

func TestParse_EventCodeDecidesInterpretation(t *testing.T) {
	// The same bare number is seconds for a race and meters for a throw.
	asTime, ok := Parse("52.40", "400m")
	require.True(t, ok)
	require.NotNil(t, asTime.Seconds)
	assert.Nil(t, asTime.Metric)

	asField, ok := Parse("52.40", "DT")
	require.True(t, ok)
	require.NotNil(t, asField.Metric)
	assert.Nil(t, asField.Seconds)
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		event string
	}{
		{"empty string", "", "100m"},
		{"whitespace only", "   ", "100m"},
		{"garbage", "fast", "100m"},
		{"negative", "-11.2", "100m"},
		{"seconds overflow with minutes", "4:72.00", "1600m"},
		{"inches overflow", "6-14", "HJ"},
		{"garbage field mark", "tall", "HJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mark, ok := Parse(tt.raw, tt.event)
			assert.False(t, ok)
			assert.Nil(t, mark.Seconds)
			assert.Nil(t, mark.Metric)
		})
	}
}

func TestParse_ImplausibleZeroIsFlagged(t *testing.T) {
	mark, ok := Parse("0", "100m")
	require.True(t, ok)
	require.NotNil(t, mark.Seconds)
	assert.Zero(t, *mark.Seconds)
	assert.NotEmpty(t, mark.Warning)

	mark, ok = Parse("0", "SP")
	require.True(t, ok)
	require.NotNil(t, mark.Metric)
	assert.NotEmpty(t, mark.Warning)
}

func TestFormatSeconds_RoundTrip(t *testing.T) {
	// format(parse(s)) == s for valid time strings, after padding.
	inputs := []string{"9.87", "14.76", "53.00", "59.99", "1:00.00", "1:52.80", "4:12.31", "10:05.20"}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			mark, ok := Parse(raw, "1600m")
			require.True(t, ok)
			require.NotNil(t, mark.Seconds)
			assert.Equal(t, raw, FormatSeconds(*mark.Seconds))
		})
	}
}
