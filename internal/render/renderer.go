// Package render rasterizes chart frames to PNG.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/christophergentle/tempcurve/internal/tempcurve"
)

// RendererConfig holds configuration for frame rendering
type RendererConfig struct {
	Background      string
	FontPath        string
	FontSize        float64
	LineHeight      float64
	Scale           float64
	MarkerRadius    float64
	HaloRadius      float64
	TemperatureFill color.NRGBA
	ApparentFill    color.NRGBA
	ConnectorColor  color.NRGBA
	TextColor       color.NRGBA
}

// DefaultConfig returns a default renderer configuration
func DefaultConfig() *RendererConfig {
	return &RendererConfig{
		Background:      "#2b5876",
		FontSize:        11,
		LineHeight:      12,
		Scale:           1,
		MarkerRadius:    3,
		HaloRadius:      6,
		TemperatureFill: color.NRGBA{255, 255, 255, 77}, // white at 0.3
		ApparentFill:    color.NRGBA{255, 255, 255, 26}, // white at 0.1
		ConnectorColor:  color.NRGBA{255, 255, 255, 77},
		TextColor:       color.NRGBA{255, 255, 255, 255},
	}
}

// Renderer draws frames with gg
type Renderer struct {
	config *RendererConfig
}

// NewRenderer creates a new renderer. A nil config uses DefaultConfig.
func NewRenderer(config *RendererConfig) *Renderer {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Scale <= 0 {
		config.Scale = 1
	}
	return &Renderer{config: config}
}

// Render draws frame onto a new image. A hidden frame is just background.
func (r *Renderer) Render(frame tempcurve.Frame) (image.Image, error) {
	dc, err := r.draw(frame)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// RenderPNG draws frame and encodes it as PNG
func (r *Renderer) RenderPNG(frame tempcurve.Frame) ([]byte, error) {
	dc, err := r.draw(frame)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) draw(frame tempcurve.Frame) (*gg.Context, error) {
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, fmt.Errorf("frame has no size: %vx%v", frame.Width, frame.Height)
	}

	s := r.config.Scale
	dc := gg.NewContext(int(math.Ceil(frame.Width*s)), int(math.Ceil(frame.Height*s)))
	dc.Scale(s, s)

	dc.SetHexColor(r.config.Background)
	dc.Clear()

	if frame.Hidden {
		return dc, nil
	}

	if r.config.FontPath != "" {
		if err := dc.LoadFontFace(r.config.FontPath, r.config.FontSize); err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", r.config.FontPath, err)
		}
	}

	r.fillPath(dc, frame.ApparentArea, r.config.ApparentFill)
	r.fillPath(dc, frame.TemperatureArea, r.config.TemperatureFill)

	for _, label := range frame.Labels {
		r.drawLabel(dc, label)
	}

	return dc, nil
}

func tracePath(dc *gg.Context, p tempcurve.Path) {
	dc.NewSubPath()
	for _, c := range p.Commands() {
		switch c.Op {
		case tempcurve.MoveTo:
			dc.MoveTo(c.P[0].X, c.P[0].Y)
		case tempcurve.LineTo:
			dc.LineTo(c.P[0].X, c.P[0].Y)
		case tempcurve.CubicTo:
			dc.CubicTo(c.P[0].X, c.P[0].Y, c.P[1].X, c.P[1].Y, c.P[2].X, c.P[2].Y)
		case tempcurve.Close:
			dc.ClosePath()
		}
	}
}

func (r *Renderer) fillPath(dc *gg.Context, p tempcurve.Path, fill color.NRGBA) {
	if p.Empty() {
		return
	}
	tracePath(dc, p)
	dc.SetColor(fill)
	dc.Fill()
}

// drawLabel draws the connector, the anchor marker and the two text lines.
func (r *Renderer) drawLabel(dc *gg.Context, label tempcurve.Label) {
	if !label.Connector.Empty() {
		tracePath(dc, label.Connector)
		dc.SetColor(r.config.ConnectorColor)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	if label.Current {
		dc.SetColor(r.config.ConnectorColor)
		dc.DrawCircle(label.Anchor.X, label.Anchor.Y, r.config.HaloRadius)
		dc.Fill()
	}
	dc.SetColor(r.config.TextColor)
	dc.DrawCircle(label.Anchor.X, label.Anchor.Y, r.config.MarkerRadius)
	dc.Fill()

	lines := strings.Split(label.Text, "\n")
	y := label.LabelPoint.Y - 4 - float64(len(lines)-1)*r.config.LineHeight
	for _, line := range lines {
		dc.DrawStringAnchored(line, label.LabelPoint.X, y, 0.5, 0)
		y += r.config.LineHeight
	}
}
