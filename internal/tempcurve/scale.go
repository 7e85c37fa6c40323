package tempcurve

// LinearScale maps a continuous domain onto an output range.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps v from the domain into the range. Values outside the domain are
// extrapolated. A zero-width domain maps everything to the range midpoint.
func (s LinearScale) Scale(v float64) float64 {
	span := s.d1 - s.d0
	if span == 0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)*(s.r1-s.r0)/span
}

// Domain returns the domain bounds.
func (s LinearScale) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Range returns the range bounds.
func (s LinearScale) Range() (float64, float64) {
	return s.r0, s.r1
}

// WithDomain returns a copy of s with a new domain and the same range.
func (s LinearScale) WithDomain(d0, d1 float64) LinearScale {
	s.d0, s.d1 = d0, d1
	return s
}

// Default chart geometry.
const (
	DefaultHeight        = 130.0
	DefaultTopPadding    = 50.0
	DefaultBottomPadding = 22.0
	DefaultLabelY        = 32.0
)

// Layout holds the display geometry the scales are built from.
type Layout struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	TopPadding    float64 `yaml:"top_padding"`
	BottomPadding float64 `yaml:"bottom_padding"`
	LabelY        float64 `yaml:"label_y"`
}

// DefaultLayout returns the standard chart layout for the given display width.
func DefaultLayout(width float64) Layout {
	return Layout{
		Width:         width,
		Height:        DefaultHeight,
		TopPadding:    DefaultTopPadding,
		BottomPadding: DefaultBottomPadding,
		LabelY:        DefaultLabelY,
	}
}

// XScale maps the hour index onto the chart width.
func (l Layout) XScale() LinearScale {
	return NewLinearScale(0, HoursPerDay-1, 0, l.Width)
}

// YScale maps the state's temperature extent onto the chart height, inverted so
// that higher temperatures sit closer to the top.
func (l Layout) YScale(s DerivedState) LinearScale {
	return NewLinearScale(s.MinTemperature, s.MaxTemperature, l.Height-l.BottomPadding, l.TopPadding)
}
