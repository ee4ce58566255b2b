package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() Series {
	base := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	return Series{
		{Time: base, Value: 21.5, BrickClass: "Air_Temperature_Sensor"},
		{Time: base.Add(10 * time.Minute), Value: 21.7, BrickClass: "Air_Temperature_Sensor"},
		{Time: base.Add(20 * time.Minute), Value: 21.1, BrickClass: "Air_Temperature_Sensor"},
	}
}

func TestSeriesLen(t *testing.T) {
	assert.Equal(t, 3, testSeries().Len())
	assert.Equal(t, 0, Series{}.Len())
}

func TestSeriesClass(t *testing.T) {
	assert.Equal(t, "Air_Temperature_Sensor", testSeries().Class())
	assert.Equal(t, "", Series{}.Class())
}

func TestWithClass(t *testing.T) {
	s := Series{
		{Time: time.Unix(0, 0), Value: 1},
		{Time: time.Unix(60, 0), Value: 2},
	}

	labeled := s.WithClass("Damper_Position_Sensor")

	require.Len(t, labeled, 2)
	for _, r := range labeled {
		assert.Equal(t, "Damper_Position_Sensor", r.BrickClass)
	}

	// The receiver must be untouched: WithClass copies.
	assert.Equal(t, "", s[0].BrickClass)
	assert.Equal(t, 1.0, labeled[0].Value)
}

func TestColumns(t *testing.T) {
	s := testSeries()

	times := s.Times()
	values := s.Values()

	require.Len(t, times, 3)
	require.Len(t, values, 3)
	assert.Equal(t, s[0].Time, times[0])
	assert.Equal(t, 21.7, values[1])
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "rfc3339",
			cell:     "2021-03-01T00:10:00Z",
			expected: time.Date(2021, 3, 1, 0, 10, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 with sub-second precision",
			cell:     "2021-03-01T00:10:00.5Z",
			expected: time.Date(2021, 3, 1, 0, 10, 0, 500000000, time.UTC),
		},
		{
			name:     "space separated without zone",
			cell:     "2021-03-01 00:10:00",
			expected: time.Date(2021, 3, 1, 0, 10, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			cell:     "2021-03-01",
			expected: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "unix seconds",
			cell:     "1614556200",
			expected: time.Unix(1614556200, 0).UTC(),
		},
		{
			name:     "surrounding whitespace",
			cell:     " 2021-03-01T00:10:00Z ",
			expected: time.Date(2021, 3, 1, 0, 10, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			cell:    "not-a-time",
			wantErr: true,
		},
		{
			name:    "empty",
			cell:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.cell)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}
