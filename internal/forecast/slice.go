// Package forecast selects and stores the hourly records a day chart is built from.
package forecast

import (
	"fmt"
	"slices"
	"time"
	_ "time/tzdata"

	"github.com/christophergentle/tempcurve/internal/tempcurve"
)

// DateLayout is the calendar-date format used for days.
const DateLayout = "2006-01-02"

// Currently is the live observation for a location.
type Currently struct {
	Time                time.Time `json:"time" dynamodbav:"time"`
	Temperature         float64   `json:"temperature" dynamodbav:"temperature"`
	ApparentTemperature float64   `json:"apparentTemperature" dynamodbav:"apparentTemperature"`
}

// SliceDay returns the records falling on date (DateLayout) in the timezone tz,
// ordered by time. The record whose hour contains currently.Time is flagged as
// current. Days with a DST change come out with 23 or 25 records.
func SliceDay(hourly []tempcurve.RawHourRecord, date, tz string, currently *Currently) ([]tempcurve.RawHourRecord, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	start, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	end := start.AddDate(0, 0, 1)

	var out []tempcurve.RawHourRecord
	for _, rec := range hourly {
		if rec.Time.Before(start) || !rec.Time.Before(end) {
			continue
		}
		rec.Current = false
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b tempcurve.RawHourRecord) int {
		return a.Time.Compare(b.Time)
	})

	if currently != nil {
		for i := range out {
			from := out[i].Time
			if !currently.Time.Before(from) && currently.Time.Before(from.Add(time.Hour)) {
				out[i].Current = true
				break
			}
		}
	}
	return out, nil
}

// Dataset holds per-day inputs for a location, indexed by day.
type Dataset struct {
	Hourly    [][]tempcurve.RawHourRecord
	Dates     []string
	Timezones []string
	Currently []*Currently
}

// Len returns the number of selectable days.
func (d Dataset) Len() int {
	return min(len(d.Hourly), len(d.Dates), len(d.Timezones))
}

// Select slices the day at index. An out-of-range index is an error.
func (d Dataset) Select(index int) ([]tempcurve.RawHourRecord, error) {
	if index < 0 || index >= d.Len() {
		return nil, fmt.Errorf("day index %d out of range [0, %d)", index, d.Len())
	}
	var cur *Currently
	if index < len(d.Currently) {
		cur = d.Currently[index]
	}
	return SliceDay(d.Hourly[index], d.Dates[index], d.Timezones[index], cur)
}

// Derive builds the chart state for the day at index. Any selection problem
// yields an invalid state.
func (d Dataset) Derive(index int) tempcurve.DerivedState {
	records, err := d.Select(index)
	if err != nil {
		return tempcurve.DerivedState{}
	}
	return tempcurve.Derive(records)
}
