package tempcurve

import "fmt"

// Formatter renders a temperature value for a unit preference, with sep
// between the number and the unit symbol.
type Formatter func(value float64, unit string, sep string) string

// Label is the overlay drawn for one labeled point.
type Label struct {
	Hour       int    `json:"hour"`
	Anchor     Vec    `json:"anchor"`     // on the temperature curve
	LabelPoint Vec    `json:"labelPoint"` // where the connector ends
	Connector  Path   `json:"-"`
	Prefix     string `json:"prefix"`
	Text       string `json:"text"`
	Current    bool   `json:"current"`
}

// Frame is the geometry for one rendered frame.
type Frame struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Progress        float64 `json:"progress"`
	Hidden          bool    `json:"hidden"`
	TemperatureArea Path    `json:"-"`
	ApparentArea    Path    `json:"-"`
	Labels          []Label `json:"labels,omitempty"`
}

// FrameOptions controls how frames are built.
type FrameOptions struct {
	Layout Layout
	Unit   string
	Format Formatter
}

func defaultFormat(v float64, unit string, sep string) string {
	return fmt.Sprintf("%.0f%s%s", Round(v), sep, unit)
}

// BuildFrame computes the geometry for snap. Scales are derived from the
// snapshot's own state, so a blended state gets blended axes.
func BuildFrame(snap Snapshot, opts FrameOptions) Frame {
	l := opts.Layout
	f := Frame{
		Width:    l.Width,
		Height:   l.Height,
		Progress: snap.Progress,
	}

	s := snap.State
	if !s.Valid || len(s.Points) == 0 {
		f.Hidden = true
		return f
	}

	f.TemperatureArea = TemperatureArea(s, l)
	f.ApparentArea = ApparentArea(s, l)
	if !snap.ShowLabels() {
		return f
	}

	format := opts.Format
	if format == nil {
		format = defaultFormat
	}

	x, y := l.XScale(), l.YScale(s)
	labeled := LabeledPoints(s.Points)
	xs := PlaceLabels(len(labeled), x)
	f.Labels = make([]Label, len(labeled))
	for i, p := range labeled {
		anchor := Vec{X: x.Scale(float64(p.Hour)), Y: y.Scale(p.R)}
		at := Vec{X: xs[i], Y: l.LabelY}
		prefix := LabelPrefix(p)
		f.Labels[i] = Label{
			Hour:       p.Hour,
			Anchor:     anchor,
			LabelPoint: at,
			Connector:  ConnectorPath(anchor, at),
			Prefix:     prefix,
			Text:       prefix + "\n" + format(p.T, opts.Unit, " "),
			Current:    p.Current,
		}
	}
	return f
}
