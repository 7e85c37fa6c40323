package tempcurve

// AreaPath builds a filled region whose top edge is a monotone curve through
// (x(hour), y(value)) and whose bottom edge runs flat along baseline.
func AreaPath(points []Point, value func(Point) float64, x, y LinearScale, baseline float64) Path {
	var p Path
	if len(points) == 0 {
		return p
	}

	top := make([]Vec, len(points))
	for i, pt := range points {
		top[i] = Vec{X: x.Scale(float64(pt.Hour)), Y: y.Scale(value(pt))}
	}

	p.monotoneX(top)
	p.lineTo(top[len(top)-1].X, baseline)
	p.lineTo(top[0].X, baseline)
	p.close()
	return p
}

// TemperatureArea is the area under the temperature curve.
func TemperatureArea(s DerivedState, l Layout) Path {
	return AreaPath(s.Points, func(p Point) float64 { return p.T }, l.XScale(), l.YScale(s), l.Height)
}

// ApparentArea is the area under the apparent temperature curve.
func ApparentArea(s DerivedState, l Layout) Path {
	return AreaPath(s.Points, func(p Point) float64 { return p.AT }, l.XScale(), l.YScale(s), l.Height)
}
