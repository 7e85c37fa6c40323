// Package tempcurve derives a renderable 24-hour temperature curve from hourly
// records and animates between successive derived states.
package tempcurve

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// HoursPerDay is the number of records a valid day must contain.
const HoursPerDay = 24

// ErrInsufficientData is returned when a day does not contain exactly 24 hourly records.
var ErrInsufficientData = errors.New("insufficient hourly data")

// RawHourRecord is one hourly forecast record as supplied by the data source
type RawHourRecord struct {
	Temperature         float64   `json:"temperature" yaml:"temperature" dynamodbav:"temperature"`
	ApparentTemperature float64   `json:"apparentTemperature" yaml:"apparentTemperature" dynamodbav:"apparentTemperature"`
	Time                time.Time `json:"time" yaml:"time" dynamodbav:"time"`
	Current             bool      `json:"current,omitempty" yaml:"current,omitempty" dynamodbav:"current"`
}

// Point is a single hour of the derived series.
type Point struct {
	Hour     int       `json:"hour"`
	T        float64   `json:"t"`
	AT       float64   `json:"at"` // apparent temperature, rounded
	R        float64   `json:"r"`  // temperature rounded for label text
	Time     time.Time `json:"time"`
	Current  bool      `json:"current,omitempty"`
	LocalMin bool      `json:"localMin,omitempty"`
	LocalMax bool      `json:"localMax,omitempty"`
}

// Labeled reports whether the point carries a label on the chart.
func (p Point) Labeled() bool {
	return p.Current || p.LocalMin || p.LocalMax
}

// DerivedState is the processed snapshot of one day's temperature data.
// When Valid is false no other field is meaningful.
type DerivedState struct {
	Points         []Point `json:"points,omitempty"`
	MinTemperature float64 `json:"minTemperature"`
	MaxTemperature float64 `json:"maxTemperature"`
	Valid          bool    `json:"valid"`
}

// Round rounds half-way values toward positive infinity, so -2.5 becomes -2.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// ExtractPoints converts a day of raw records into the normalized point series.
func ExtractPoints(records []RawHourRecord) ([]Point, error) {
	if len(records) != HoursPerDay {
		return nil, fmt.Errorf("%w: got %d records, want %d", ErrInsufficientData, len(records), HoursPerDay)
	}

	points := make([]Point, len(records))
	for hour, rec := range records {
		points[hour] = Point{
			Hour:    hour,
			T:       rec.Temperature,
			AT:      Round(rec.ApparentTemperature),
			R:       Round(rec.Temperature),
			Time:    rec.Time,
			Current: rec.Current,
		}
	}
	return points, nil
}

// AnnotateExtrema flags the first point holding the minimum temperature and the
// first point holding the maximum temperature. Later equal values stay unflagged.
func AnnotateExtrema(points []Point) {
	if len(points) == 0 {
		return
	}

	lo, hi := points[0].T, points[0].T
	for _, p := range points[1:] {
		lo = min(lo, p.T)
		hi = max(hi, p.T)
	}

	minPending, maxPending := true, true
	for i := range points {
		if maxPending && points[i].T == hi {
			points[i].LocalMax = true
			maxPending = false
		}
		if minPending && points[i].T == lo {
			points[i].LocalMin = true
			minPending = false
		}
	}
}

// Derive runs the extraction pipeline. Any record count other than 24 yields an
// invalid state rather than an error.
func Derive(records []RawHourRecord) DerivedState {
	points, err := ExtractPoints(records)
	if err != nil {
		return DerivedState{}
	}
	AnnotateExtrema(points)

	lo, hi := points[0].T, points[0].T
	for _, p := range points {
		lo = min(lo, p.T, p.AT)
		hi = max(hi, p.T, p.AT)
	}

	return DerivedState{
		Points:         points,
		MinTemperature: lo,
		MaxTemperature: hi,
		Valid:          true,
	}
}
