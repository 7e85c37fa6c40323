package tempcurve

import "time"

func lerp(a, b, p float64) float64 {
	if a == b {
		return a
	}
	return a*(1-p) + b*p
}

func lerpTime(a, b time.Time, p float64) time.Time {
	if a.IsZero() {
		return b
	}
	return a.Add(time.Duration(float64(b.Sub(a)) * p))
}

// Blend interpolates from a to b at progress p in [0, 1]. Numeric fields are
// interpolated linearly and points are matched by hour index. Flags and Valid
// are taken from b as soon as p > 0. Blend(a, b, 0) is a and Blend(a, b, 1) is b.
func Blend(a, b DerivedState, p float64) DerivedState {
	if p <= 0 {
		return a
	}
	if p >= 1 {
		return b
	}

	out := DerivedState{
		MinTemperature: lerp(a.MinTemperature, b.MinTemperature, p),
		MaxTemperature: lerp(a.MaxTemperature, b.MaxTemperature, p),
		Valid:          b.Valid,
	}
	if len(b.Points) == 0 {
		return out
	}

	out.Points = make([]Point, len(b.Points))
	for i, to := range b.Points {
		if i >= len(a.Points) {
			out.Points[i] = to
			continue
		}
		from := a.Points[i]
		out.Points[i] = Point{
			Hour:     to.Hour,
			T:        lerp(from.T, to.T, p),
			AT:       lerp(from.AT, to.AT, p),
			R:        lerp(from.R, to.R, p),
			Time:     lerpTime(from.Time, to.Time, p),
			Current:  to.Current,
			LocalMin: to.LocalMin,
			LocalMax: to.LocalMax,
		}
	}
	return out
}
