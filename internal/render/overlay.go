package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"draft-editor/internal/entity"
	"draft-editor/internal/snap"
	"draft-editor/internal/transform"
	"draft-editor/pkg/colorutil"
	"draft-editor/pkg/geometry"
)

// Overlay describes everything drawn above the content surface:
// selection feedback, drag previews, snap markers and the measure
// readout. All coordinates are in world space; the painter transforms
// them per frame so decorations stay glued to the scene while panning
// and zooming.
type Overlay struct {
	Marquee   *Marquee
	Lasso     []geometry.Point2D
	Preview   []entity.Entity
	Grips     []GripMark
	Snap      *SnapMark
	Measure   *Measure
	Crosshair *geometry.Point2D
}

// Marquee is the rectangular selection box between its anchor and the
// current cursor position. Crossing marquees (dragged right to left)
// draw dashed and green; window marquees draw solid and blue.
type Marquee struct {
	Start    geometry.Point2D
	Current  geometry.Point2D
	Crossing bool
}

// GripMark is one grip handle. Hot marks the grip under the cursor or
// being dragged.
type GripMark struct {
	Pos geometry.Point2D
	Hot bool
}

// SnapMark is the active snap indicator.
type SnapMark struct {
	Pos  geometry.Point2D
	Mode snap.Mode
}

// Measure is the measure tool readout: a line between two points with
// a text label.
type Measure struct {
	From  geometry.Point2D
	To    geometry.Point2D
	Label string
}

// Overlay marker dimensions in pixels. Odd sizes center on the half
// pixel grid.
const (
	GripSizePx      = 7
	SnapGlyphSizePx = 9
)

var (
	marqueeWindowFill   = color.RGBA{77, 166, 255, 40}
	marqueeWindowEdge   = SelectionColor
	marqueeCrossingFill = color.RGBA{110, 220, 110, 40}
	marqueeCrossingEdge = color.RGBA{90, 200, 90, 255}
	gripCold            = SelectionColor
	gripHot             = color.RGBA{230, 80, 80, 255}
	snapColor           = colorutil.Yellow
	crosshairColor      = color.RGBA{200, 200, 200, 90}
)

var (
	overlayFontOnce sync.Once
	overlayFontFace font.Face
)

func overlayFont() font.Face {
	overlayFontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		overlayFontFace = truetype.NewFace(f, &truetype.Options{Size: 13})
	})
	return overlayFontFace
}

// OverlayPainter paints the overlay surface. The raster is cleared to
// transparent every frame, so an empty overlay leaves the content
// surface fully visible.
type OverlayPainter struct {
	reg *Registry
}

// NewOverlayPainter creates a painter using the given registry for
// preview entities.
func NewOverlayPainter(reg *Registry) *OverlayPainter {
	return &OverlayPainter{reg: reg}
}

// Paint draws the overlay onto dst. A nil overlay just clears.
func (p *OverlayPainter) Paint(dst *image.RGBA, ov *Overlay, vt transform.ViewTransform) {
	dc := gg.NewContextForRGBA(dst)
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()
	if ov == nil {
		return
	}

	if ov.Crosshair != nil {
		drawCrosshair(dc, *ov.Crosshair, vt)
	}
	for _, e := range ov.Preview {
		if e.Validate() != nil {
			continue
		}
		p.reg.Draw(dc, vt, e, previewStroke(e))
	}
	if ov.Marquee != nil {
		drawMarquee(dc, ov.Marquee, vt)
	}
	if len(ov.Lasso) >= 2 {
		drawLasso(dc, ov.Lasso, vt)
	}
	for _, g := range ov.Grips {
		drawGrip(dc, g, vt)
	}
	if ov.Snap != nil {
		drawSnapGlyph(dc, ov.Snap, vt)
	}
	if ov.Measure != nil {
		drawMeasure(dc, ov.Measure, vt)
	}
}

// previewStroke resolves a stroke for an entity outside any scene and
// makes it slightly translucent so previews read as provisional.
func previewStroke(e entity.Entity) StrokeStyle {
	st := e.EntityStyle()
	stroke := StrokeStyle{
		Color: colorutil.ParseHexOr(st.Color, colorutil.White),
		Width: st.LineWeight,
		Dash:  DashPattern(st.LineType),
	}
	if stroke.Width <= 0 {
		stroke.Width = 1
	}
	if st.Selected {
		stroke.Color = SelectionColor
	}
	stroke.Color = colorutil.WithAlpha(stroke.Color, 200)
	return stroke
}

// drawCrosshair draws full-height and full-width hairlines through the
// cursor while a drawing tool is active.
func drawCrosshair(dc *gg.Context, at geometry.Point2D, vt transform.ViewTransform) {
	p := vt.WorldToScreen(at)
	x := transform.AlignHalfPixel(p.X)
	y := transform.AlignHalfPixel(p.Y)

	dc.SetColor(crosshairColor)
	dc.SetLineWidth(1)
	dc.DrawLine(x, 0, x, float64(dc.Height()))
	dc.Stroke()
	dc.DrawLine(0, y, float64(dc.Width()), y)
	dc.Stroke()
}

func drawMarquee(dc *gg.Context, m *Marquee, vt transform.ViewTransform) {
	a := vt.WorldToScreen(m.Start)
	b := vt.WorldToScreen(m.Current)
	rect := geometry.NewRectFromPoints(a, b)

	fill, edge := marqueeWindowFill, marqueeWindowEdge
	if m.Crossing {
		fill, edge = marqueeCrossingFill, marqueeCrossingEdge
	}

	dc.SetColor(fill)
	dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	dc.Fill()

	dc.SetColor(edge)
	dc.SetLineWidth(1)
	if m.Crossing {
		dc.SetDash(4, 4)
	}
	dc.DrawRectangle(
		transform.AlignHalfPixel(rect.X),
		transform.AlignHalfPixel(rect.Y),
		rect.Width, rect.Height)
	dc.Stroke()
	dc.SetDash()
}

func drawLasso(dc *gg.Context, points []geometry.Point2D, vt transform.ViewTransform) {
	first := vt.WorldToScreen(points[0])
	dc.MoveTo(first.X, first.Y)
	for _, p := range points[1:] {
		sp := vt.WorldToScreen(p)
		dc.LineTo(sp.X, sp.Y)
	}
	dc.ClosePath()

	dc.SetColor(marqueeCrossingFill)
	dc.FillPreserve()
	dc.SetColor(marqueeCrossingEdge)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	dc.Stroke()
	dc.SetDash()
}

func drawGrip(dc *gg.Context, g GripMark, vt transform.ViewTransform) {
	p := vt.WorldToScreen(g.Pos)
	half := float64(GripSizePx) / 2
	x := transform.AlignHalfPixel(p.X-half) - 0.5
	y := transform.AlignHalfPixel(p.Y-half) - 0.5

	fill := gripCold
	if g.Hot {
		fill = gripHot
	}
	dc.SetColor(fill)
	dc.DrawRectangle(x, y, GripSizePx, GripSizePx)
	dc.Fill()

	dc.SetColor(colorutil.White)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x+0.5, y+0.5, GripSizePx-1, GripSizePx-1)
	dc.Stroke()
}

// drawSnapGlyph draws the per-mode snap marker: square for endpoint,
// triangle for midpoint, circle for center, X for intersection and a
// right angle for perpendicular.
func drawSnapGlyph(dc *gg.Context, s *SnapMark, vt transform.ViewTransform) {
	p := vt.WorldToScreen(s.Pos)
	half := float64(SnapGlyphSizePx) / 2

	dc.SetColor(snapColor)
	dc.SetLineWidth(1.5)

	switch s.Mode {
	case snap.ModeEndpoint:
		dc.DrawRectangle(p.X-half, p.Y-half, SnapGlyphSizePx, SnapGlyphSizePx)
		dc.Stroke()
	case snap.ModeMidpoint:
		dc.MoveTo(p.X, p.Y-half)
		dc.LineTo(p.X+half, p.Y+half)
		dc.LineTo(p.X-half, p.Y+half)
		dc.ClosePath()
		dc.Stroke()
	case snap.ModeCenter:
		dc.DrawCircle(p.X, p.Y, half)
		dc.Stroke()
	case snap.ModeIntersection:
		dc.DrawLine(p.X-half, p.Y-half, p.X+half, p.Y+half)
		dc.Stroke()
		dc.DrawLine(p.X-half, p.Y+half, p.X+half, p.Y-half)
		dc.Stroke()
	case snap.ModePerpendicular:
		dc.DrawLine(p.X-half, p.Y-half, p.X-half, p.Y+half)
		dc.Stroke()
		dc.DrawLine(p.X-half, p.Y+half, p.X+half, p.Y+half)
		dc.Stroke()
		dc.DrawLine(p.X-half, p.Y, p.X, p.Y)
		dc.Stroke()
		dc.DrawLine(p.X, p.Y, p.X, p.Y+half)
		dc.Stroke()
	default:
		dc.DrawCircle(p.X, p.Y, half)
		dc.Stroke()
	}
}

func drawMeasure(dc *gg.Context, m *Measure, vt transform.ViewTransform) {
	a := vt.WorldToScreen(m.From)
	b := vt.WorldToScreen(m.To)

	dc.SetColor(colorutil.White)
	dc.SetLineWidth(1)
	dc.SetDash(6, 3)
	dc.DrawLine(a.X, a.Y, b.X, b.Y)
	dc.Stroke()
	dc.SetDash()

	// End ticks.
	for _, p := range []geometry.Point2D{a, b} {
		dc.DrawLine(p.X-3, p.Y-3, p.X+3, p.Y+3)
		dc.Stroke()
		dc.DrawLine(p.X-3, p.Y+3, p.X+3, p.Y-3)
		dc.Stroke()
	}

	if m.Label == "" {
		return
	}
	face := overlayFont()
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	mid := a.Midpoint(b)
	w, h := dc.MeasureString(m.Label)

	dc.SetRGBA(0, 0, 0, 0.7)
	dc.DrawRectangle(mid.X-w/2-4, mid.Y-h-10, w+8, h+6)
	dc.Fill()

	dc.SetColor(colorutil.White)
	dc.DrawStringAnchored(m.Label, mid.X, mid.Y-7, 0.5, 0)
}
