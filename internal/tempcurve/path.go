package tempcurve

import (
	"math"
	"strconv"
	"strings"
)

// Vec is a point in output coordinates.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Op identifies a path command.
type Op byte

const (
	MoveTo  Op = 'M'
	LineTo  Op = 'L'
	CubicTo Op = 'C'
	Close   Op = 'Z'
)

// Command is one path segment. CubicTo uses all three points (two controls and
// the end point); MoveTo and LineTo use only P[0].
type Command struct {
	Op Op
	P  [3]Vec
}

// Path is a sequence of drawing commands in output coordinates.
type Path struct {
	cmds []Command
}

func (p *Path) moveTo(x, y float64) {
	p.cmds = append(p.cmds, Command{Op: MoveTo, P: [3]Vec{{x, y}}})
}

func (p *Path) lineTo(x, y float64) {
	p.cmds = append(p.cmds, Command{Op: LineTo, P: [3]Vec{{x, y}}})
}

func (p *Path) cubicTo(x1, y1, x2, y2, x, y float64) {
	p.cmds = append(p.cmds, Command{Op: CubicTo, P: [3]Vec{{x1, y1}, {x2, y2}, {x, y}}})
}

func (p *Path) close() {
	p.cmds = append(p.cmds, Command{Op: Close})
}

// Commands returns the path commands in drawing order.
func (p Path) Commands() []Command {
	return p.cmds
}

// Empty reports whether the path has no commands.
func (p Path) Empty() bool {
	return len(p.cmds) == 0
}

// Start returns the first point of the path.
func (p Path) Start() (Vec, bool) {
	if len(p.cmds) == 0 {
		return Vec{}, false
	}
	return p.cmds[0].P[0], true
}

// End returns the last point the path reaches.
func (p Path) End() (Vec, bool) {
	for i := len(p.cmds) - 1; i >= 0; i-- {
		switch c := p.cmds[i]; c.Op {
		case CubicTo:
			return c.P[2], true
		case MoveTo, LineTo:
			return c.P[0], true
		}
	}
	return Vec{}, false
}

// String renders the path as SVG path data.
func (p Path) String() string {
	var b strings.Builder
	for _, c := range p.cmds {
		b.WriteByte(byte(c.Op))
		switch c.Op {
		case MoveTo, LineTo:
			writeVec(&b, c.P[0])
		case CubicTo:
			writeVec(&b, c.P[0])
			b.WriteByte(',')
			writeVec(&b, c.P[1])
			b.WriteByte(',')
			writeVec(&b, c.P[2])
		}
	}
	return b.String()
}

func writeVec(b *strings.Builder, v Vec) {
	b.WriteString(formatCoord(v.X))
	b.WriteByte(',')
	b.WriteString(formatCoord(v.Y))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// monotoneX appends a monotone cubic through pts, whose x values must be
// increasing. Tangents follow Fritsch-Carlson, so the curve never overshoots
// neighbouring samples.
func (p *Path) monotoneX(pts []Vec) {
	switch len(pts) {
	case 0:
		return
	case 1:
		p.moveTo(pts[0].X, pts[0].Y)
		return
	case 2:
		p.moveTo(pts[0].X, pts[0].Y)
		p.lineTo(pts[1].X, pts[1].Y)
		return
	}

	n := len(pts)
	tangents := make([]float64, n)
	for i := 1; i < n-1; i++ {
		tangents[i] = interiorTangent(pts[i-1], pts[i], pts[i+1])
	}
	tangents[0] = endTangent(pts[0], pts[1], tangents[1])
	tangents[n-1] = endTangent(pts[n-2], pts[n-1], tangents[n-2])

	p.moveTo(pts[0].X, pts[0].Y)
	for i := 1; i < n; i++ {
		a, b := pts[i-1], pts[i]
		dx := (b.X - a.X) / 3
		p.cubicTo(a.X+dx, a.Y+dx*tangents[i-1], b.X-dx, b.Y-dx*tangents[i], b.X, b.Y)
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func interiorTangent(a, b, c Vec) float64 {
	h0, h1 := b.X-a.X, c.X-b.X
	if h0 == 0 || h1 == 0 {
		return 0
	}
	s0 := (b.Y - a.Y) / h0
	s1 := (c.Y - b.Y) / h1
	m := (s0*h1 + s1*h0) / (h0 + h1)
	t := (sign(s0) + sign(s1)) * min(math.Abs(s0), math.Abs(s1), 0.5*math.Abs(m))
	if math.IsNaN(t) {
		return 0
	}
	return t
}

func endTangent(a, b Vec, neighbour float64) float64 {
	h := b.X - a.X
	if h == 0 {
		return neighbour
	}
	return (3*(b.Y-a.Y)/h - neighbour) / 2
}

// basis appends a uniform cubic B-spline through the control points pts. The
// curve starts at the first point and ends at the last one.
func (p *Path) basis(pts []Vec) {
	if len(pts) == 0 {
		return
	}
	p.moveTo(pts[0].X, pts[0].Y)
	switch len(pts) {
	case 1:
		return
	case 2:
		p.lineTo(pts[1].X, pts[1].Y)
		return
	}

	p0, p1 := pts[0], pts[1]
	p.lineTo((5*p0.X+p1.X)/6, (5*p0.Y+p1.Y)/6)
	// the last control point is visited twice to pull the curve onto it
	for i := 2; i <= len(pts); i++ {
		q := pts[min(i, len(pts)-1)]
		p.cubicTo(
			(2*p0.X+p1.X)/3, (2*p0.Y+p1.Y)/3,
			(p0.X+2*p1.X)/3, (p0.Y+2*p1.Y)/3,
			(p0.X+4*p1.X+q.X)/6, (p0.Y+4*p1.Y+q.Y)/6,
		)
		p0, p1 = p1, q
	}
	p.lineTo(p1.X, p1.Y)
}
