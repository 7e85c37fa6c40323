package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophergentle/tempcurve/internal/tempcurve"
)

// hourlyFrom returns n consecutive hourly records starting at start.
func hourlyFrom(start time.Time, n int) []tempcurve.RawHourRecord {
	out := make([]tempcurve.RawHourRecord, n)
	for i := range out {
		out[i] = tempcurve.RawHourRecord{
			Temperature:         float64(i),
			ApparentTemperature: float64(i) - 1,
			Time:                start.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestSliceDayUTC(t *testing.T) {
	hourly := hourlyFrom(time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC), 48)

	got, err := SliceDay(hourly, "2024-07-01", "UTC", nil)
	require.NoError(t, err)

	require.Len(t, got, 24)
	assert.True(t, got[0].Time.Equal(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got[23].Time.Equal(time.Date(2024, 7, 1, 23, 0, 0, 0, time.UTC)))
	for _, r := range got {
		assert.False(t, r.Current)
	}
}

func TestSliceDayTimezone(t *testing.T) {
	hourly := hourlyFrom(time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC), 48)

	got, err := SliceDay(hourly, "2024-07-01", "Europe/Berlin", nil)
	require.NoError(t, err)

	require.Len(t, got, 24)
	// Berlin is UTC+2 in July, so local midnight is 22:00 UTC the day before
	assert.True(t, got[0].Time.Equal(time.Date(2024, 6, 30, 22, 0, 0, 0, time.UTC)))
}

func TestSliceDayMarksCurrent(t *testing.T) {
	hourly := hourlyFrom(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 24)
	hourly[2].Current = true // stale flag from the source

	cur := &Currently{Time: time.Date(2024, 7, 1, 5, 30, 0, 0, time.UTC)}
	got, err := SliceDay(hourly, "2024-07-01", "UTC", cur)
	require.NoError(t, err)

	for i, r := range got {
		assert.Equal(t, i == 5, r.Current, "hour %d", i)
	}
	assert.True(t, hourly[2].Current, "input left untouched")
}

func TestSliceDaySortsRecords(t *testing.T) {
	hourly := hourlyFrom(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 24)
	hourly[0], hourly[10] = hourly[10], hourly[0]

	got, err := SliceDay(hourly, "2024-07-01", "UTC", nil)
	require.NoError(t, err)

	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Time.Before(got[i].Time))
	}
}

func TestSliceDayDSTIsInvalid(t *testing.T) {
	// clocks spring forward in New York on 2024-03-10: the local day has 23 hours
	hourly := hourlyFrom(time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC), 72)

	got, err := SliceDay(hourly, "2024-03-10", "America/New_York", nil)
	require.NoError(t, err)

	assert.Len(t, got, 23)
	assert.False(t, tempcurve.Derive(got).Valid)
}

func TestSliceDayErrors(t *testing.T) {
	_, err := SliceDay(nil, "2024-07-01", "Mars/Olympus", nil)
	assert.Error(t, err)

	_, err = SliceDay(nil, "07/01/2024", "UTC", nil)
	assert.Error(t, err)
}

func TestDatasetDerive(t *testing.T) {
	ds := Dataset{
		Hourly: [][]tempcurve.RawHourRecord{
			hourlyFrom(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 24),
			hourlyFrom(time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), 20),
		},
		Dates:     []string{"2024-07-01", "2024-07-02"},
		Timezones: []string{"UTC", "UTC"},
	}

	assert.Equal(t, 2, ds.Len())
	assert.True(t, ds.Derive(0).Valid)
	assert.False(t, ds.Derive(1).Valid, "partial day")
	assert.False(t, ds.Derive(2).Valid, "out of range")
	assert.False(t, ds.Derive(-1).Valid, "out of range")

	_, err := ds.Select(5)
	assert.Error(t, err)
}
