package tempcurve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearScale(t *testing.T) {
	s := NewLinearScale(0, 23, 0, 460)

	assert.Equal(t, 0.0, s.Scale(0))
	assert.Equal(t, 460.0, s.Scale(23))
	assert.InDelta(t, 230.0, s.Scale(11.5), 1e-9)
	assert.InDelta(t, 480.0, s.Scale(24), 1e-9, "extrapolates past the domain")
}

func TestLinearScaleWithDomainCopies(t *testing.T) {
	s := NewLinearScale(0, 23, 0, 300)
	c := s.WithDomain(0, 3)

	d0, d1 := s.Domain()
	assert.Equal(t, 0.0, d0)
	assert.Equal(t, 23.0, d1)

	d0, d1 = c.Domain()
	assert.Equal(t, 0.0, d0)
	assert.Equal(t, 3.0, d1)

	r0, r1 := c.Range()
	assert.Equal(t, 0.0, r0)
	assert.Equal(t, 300.0, r1)
}

func TestYScaleInverted(t *testing.T) {
	l := DefaultLayout(320)
	y := l.YScale(DerivedState{MinTemperature: 5, MaxTemperature: 25, Valid: true})

	assert.Equal(t, l.Height-l.BottomPadding, y.Scale(5))
	assert.Equal(t, l.TopPadding, y.Scale(25))
	assert.Less(t, y.Scale(20), y.Scale(10), "warmer is higher on screen")
}

func TestYScaleDegenerateDomain(t *testing.T) {
	l := DefaultLayout(320)
	y := l.YScale(DerivedState{MinTemperature: 10, MaxTemperature: 10, Valid: true})

	want := (l.Height - l.BottomPadding + l.TopPadding) / 2
	for _, v := range []float64{-40, 0, 10, 10.0001, 99} {
		got := y.Scale(v)
		assert.Equal(t, want, got, "Scale(%v)", v)
	}
}

func TestXScale(t *testing.T) {
	x := DefaultLayout(230).XScale()

	assert.Equal(t, 0.0, x.Scale(0))
	assert.Equal(t, 230.0, x.Scale(23))
	assert.InDelta(t, 10.0, x.Scale(1), 1e-9)
}
