package detectionformats_test

import (
	"testing"
	"time"

	df "github.com/hcole-usgs/earthquake-detection-formats/pkg/detectionformats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime_Canonical(t *testing.T) {
	got, err := df.ParseTime("2015-12-28T21:32:24.017Z")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, 12, 28, 21, 32, 24, 17_000_000, time.UTC), got)
}

func TestParseTime_Rejects(t *testing.T) {
	tests := []string{
		"",
		"2015-12-28T21:32:24Z",
		"2015-12-28T21:32:24.017",
		"2015-12-28T21:32:24.0170Z",
		"2015-12-28 21:32:24.017Z",
		"2015-13-28T21:32:24.017Z",
		"2015-12-28T21:32:24.017+00:00",
		"not a time at all, sorry",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := df.ParseTime(s)
			assert.ErrorIs(t, err, df.ErrInvalidTime)
			assert.False(t, df.IsTimeString(s))
		})
	}
}

func TestFormatTime_RoundsToMillisecond(t *testing.T) {
	in := time.Date(2015, 12, 28, 21, 32, 24, 17_600_000, time.FixedZone("X", 3600))

	got := df.FormatTime(in)

	assert.Equal(t, "2015-12-28T20:32:24.018Z", got)
	assert.Len(t, got, len(df.TimeLayout))
	assert.True(t, df.IsTimeString(got))
}

func TestEpochTime_RoundTrip(t *testing.T) {
	in := time.Date(2015, 12, 28, 21, 32, 24, 17_000_000, time.UTC)

	secs := df.EpochTime(in)

	assert.InDelta(t, 1451338344.017, secs, 1e-6)
	assert.Equal(t, in, df.TimeFromEpoch(secs))
	assert.Equal(t, "2015-12-28T21:32:24.017Z", df.FormatTime(df.TimeFromEpoch(secs)))
}
