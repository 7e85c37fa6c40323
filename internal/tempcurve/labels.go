package tempcurve

// Label prefixes, in precedence order.
const (
	PrefixCurrent = "Current"
	PrefixMin     = "Min"
	PrefixMax     = "Max"
)

// connectorBend is the vertical offset of the connector's inner control points.
const connectorBend = 10.0

// LabeledPoints returns the points that carry a label, in hour order.
func LabeledPoints(points []Point) []Point {
	var out []Point
	for _, p := range points {
		if p.Labeled() {
			out = append(out, p)
		}
	}
	return out
}

// PlaceLabels spreads n label anchors evenly across the range of x, independent
// of where the labeled hours actually fall. Position i is the centre of the i-th
// of n equal slots.
func PlaceLabels(n int, x LinearScale) []float64 {
	if n <= 0 {
		return nil
	}
	slots := x.WithDomain(0, float64(n))
	out := make([]float64, n)
	for i := range out {
		out[i] = slots.Scale(float64(i) + 0.5)
	}
	return out
}

// LabelPrefix returns the label heading for p. Current wins over Min, Min over Max.
func LabelPrefix(p Point) string {
	switch {
	case p.Current:
		return PrefixCurrent
	case p.LocalMin:
		return PrefixMin
	case p.LocalMax:
		return PrefixMax
	}
	return ""
}

// ConnectorPath joins a data anchor to its label with a smooth curve that leaves
// the anchor vertically and arrives at the label vertically.
func ConnectorPath(anchor, label Vec) Path {
	var p Path
	p.basis([]Vec{
		anchor,
		{X: anchor.X, Y: anchor.Y - connectorBend},
		{X: label.X, Y: label.Y + connectorBend},
		label,
	})
	return p
}
