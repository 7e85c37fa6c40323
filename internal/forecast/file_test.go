package forecast

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDays = `[
  {
    "location": "lisbon",
    "date": "2024-07-01",
    "timezone": "Europe/Lisbon",
    "hours": [
      {"temperature": 18.2, "apparentTemperature": 17.9, "time": "2024-06-30T23:00:00Z"},
      {"temperature": 17.6, "apparentTemperature": 17.1, "time": "2024-07-01T00:00:00Z"}
    ],
    "currently": {"time": "2024-06-30T23:20:00Z", "temperature": 18.0, "apparentTemperature": 17.5}
  }
]`

func TestReadDays(t *testing.T) {
	days, err := ReadDays(strings.NewReader(sampleDays))
	require.NoError(t, err)
	require.Len(t, days, 1)

	d := days[0]
	assert.Equal(t, "lisbon", d.Location)
	require.Len(t, d.Hours, 2)
	assert.Equal(t, 17.9, d.Hours[0].ApparentTemperature)
	require.NotNil(t, d.Currently)

	// 23:00 UTC on June 30th is already July 1st in Lisbon
	records, err := d.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Current)
	assert.False(t, records[1].Current)
}

func TestReadDaysInvalid(t *testing.T) {
	_, err := ReadDays(strings.NewReader(`{"location": "lisbon"}`))
	assert.Error(t, err)
}

func TestLoadDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDays), 0o644))

	days, err := LoadDays(path)
	require.NoError(t, err)
	assert.Len(t, days, 1)

	_, err = LoadDays(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
