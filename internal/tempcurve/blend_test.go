package tempcurve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blendPair() (DerivedState, DerivedState) {
	a := Derive(dayRecords(rising(3.3, 17.9), -1.2))
	recs := dayRecords(rising(25.1, 11.7), 2.6)
	for i := range recs {
		recs[i].Time = recs[i].Time.Add(24 * time.Hour)
	}
	recs[9].Current = true
	b := Derive(recs)
	return a, b
}

func TestBlendEndpoints(t *testing.T) {
	a, b := blendPair()

	assert.Equal(t, a, Blend(a, b, 0))
	assert.Equal(t, b, Blend(a, b, 1))
	assert.Equal(t, a, Blend(a, b, -0.5), "progress is clamped below")
	assert.Equal(t, b, Blend(a, b, 1.5), "progress is clamped above")
}

func TestBlendMidpoint(t *testing.T) {
	a, b := blendPair()

	m := Blend(a, b, 0.5)

	require.Len(t, m.Points, HoursPerDay)
	assert.True(t, m.Valid)
	assert.InDelta(t, (a.MinTemperature+b.MinTemperature)/2, m.MinTemperature, 1e-9)
	assert.InDelta(t, (a.MaxTemperature+b.MaxTemperature)/2, m.MaxTemperature, 1e-9)
	for i, p := range m.Points {
		assert.Equal(t, i, p.Hour)
		assert.InDelta(t, (a.Points[i].T+b.Points[i].T)/2, p.T, 1e-9)
		assert.InDelta(t, (a.Points[i].AT+b.Points[i].AT)/2, p.AT, 1e-9)
		assert.InDelta(t, (a.Points[i].R+b.Points[i].R)/2, p.R, 1e-9)
		assert.Equal(t, a.Points[i].Time.Add(12*time.Hour), p.Time)
	}
}

func TestBlendFlagsSnapToTarget(t *testing.T) {
	a, b := blendPair()

	m := Blend(a, b, 0.01)

	for i, p := range m.Points {
		assert.Equal(t, b.Points[i].Current, p.Current, "hour %d", i)
		assert.Equal(t, b.Points[i].LocalMin, p.LocalMin, "hour %d", i)
		assert.Equal(t, b.Points[i].LocalMax, p.LocalMax, "hour %d", i)
	}
}

func TestBlendDoesNotMutateInputs(t *testing.T) {
	a, b := blendPair()
	aT, bT := a.Points[5].T, b.Points[5].T

	_ = Blend(a, b, 0.3)

	assert.Equal(t, aT, a.Points[5].T)
	assert.Equal(t, bT, b.Points[5].T)
}

func TestBlendIntoInvalid(t *testing.T) {
	a, _ := blendPair()

	m := Blend(a, DerivedState{}, 0.5)

	assert.False(t, m.Valid)
	assert.Empty(t, m.Points)
}
