package render

import (
	"github.com/fogleman/gg"

	"draft-editor/internal/entity"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

// Renderer draws one entity kind. The stroke color, width and dash are
// already applied to the context; implementations build the path and
// stroke it.
type Renderer interface {
	Draw(dc *gg.Context, vt transform.ViewTransform, e entity.Entity, stroke StrokeStyle)
}

// Registry maps entity kinds to renderers. Registering a renderer for
// a new kind is all it takes to make that kind drawable.
type Registry struct {
	renderers map[entity.Kind]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[entity.Kind]Renderer)}
}

// DefaultRegistry returns a registry with all built-in kinds
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(entity.KindLine, lineRenderer{})
	r.Register(entity.KindCircle, circleRenderer{})
	r.Register(entity.KindArc, arcRenderer{})
	r.Register(entity.KindPolyline, polylineRenderer{})
	r.Register(entity.KindRectangle, rectangleRenderer{})
	return r
}

// Register installs the renderer for a kind, replacing any previous
// one.
func (r *Registry) Register(kind entity.Kind, renderer Renderer) {
	r.renderers[kind] = renderer
}

// Lookup returns the renderer for a kind.
func (r *Registry) Lookup(kind entity.Kind) (Renderer, bool) {
	renderer, ok := r.renderers[kind]
	return renderer, ok
}

// Draw renders one entity. It returns false if no renderer is
// registered for the entity's kind.
func (r *Registry) Draw(dc *gg.Context, vt transform.ViewTransform, e entity.Entity, stroke StrokeStyle) bool {
	renderer, ok := r.renderers[e.EntityKind()]
	if !ok {
		return false
	}

	dc.SetColor(stroke.Color)
	dc.SetLineWidth(stroke.Width)
	if len(stroke.Dash) > 0 {
		dc.SetDash(stroke.Dash...)
	} else {
		dc.SetDash()
	}
	renderer.Draw(dc, vt, e, stroke)
	dc.SetDash()
	return true
}

// alignStroke snaps the endpoints of an axis-aligned segment to half
// pixels when the stroke width is odd, so the stroke fills whole pixel
// rows instead of bleeding across two.
func alignStroke(p1, p2 geometry.Point2D, width float64) (geometry.Point2D, geometry.Point2D) {
	if int(width)%2 == 0 {
		return p1, p2
	}
	if p1.X == p2.X {
		x := transform.AlignHalfPixel(p1.X)
		p1.X, p2.X = x, x
	}
	if p1.Y == p2.Y {
		y := transform.AlignHalfPixel(p1.Y)
		p1.Y, p2.Y = y, y
	}
	return p1, p2
}

type lineRenderer struct{}

func (lineRenderer) Draw(dc *gg.Context, vt transform.ViewTransform, e entity.Entity, stroke StrokeStyle) {
	l := e.(*entity.Line)
	p1 := vt.WorldToScreen(l.Start)
	p2 := vt.WorldToScreen(l.End)
	p1, p2 = alignStroke(p1, p2, stroke.Width)
	dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	dc.Stroke()
}

type circleRenderer struct{}

func (circleRenderer) Draw(dc *gg.Context, vt transform.ViewTransform, e entity.Entity, stroke StrokeStyle) {
	c := e.(*entity.Circle)
	center := vt.WorldToScreen(c.Center)
	dc.DrawCircle(center.X, center.Y, vt.WorldToScreenDistance(c.Radius))
	dc.Stroke()
}

type arcRenderer struct{}

func (arcRenderer) Draw(dc *gg.Context, vt transform.ViewTransform, e entity.Entity, stroke StrokeStyle) {
	a := e.(*entity.Arc)
	center := vt.WorldToScreen(a.Center)
	// The screen Y flip mirrors angles, so a counter-clockwise world
	// sweep becomes a clockwise screen sweep.
	start := -a.StartAngle
	end := -(a.StartAngle + geometry.ArcSweep(a.StartAngle, a.EndAngle))
	dc.DrawArc(center.X, center.Y, vt.WorldToScreenDistance(a.Radius), start, end)
	dc.Stroke()
}

type polylineRenderer struct{}

func (polylineRenderer) Draw(dc *gg.Context, vt transform.ViewTransform, e entity.Entity, stroke StrokeStyle) {
	p := e.(*entity.Polyline)
	if len(p.Vertices) < 2 {
		return
	}
	first := vt.WorldToScreen(p.Vertices[0])
	dc.MoveTo(first.X, first.Y)
	for _, v := range p.Vertices[1:] {
		sp := vt.WorldToScreen(v)
		dc.LineTo(sp.X, sp.Y)
	}
	if p.Closed {
		dc.ClosePath()
	}
	dc.Stroke()
}

type rectangleRenderer struct{}

func (rectangleRenderer) Draw(dc *gg.Context, vt transform.ViewTransform, e entity.Entity, stroke StrokeStyle) {
	r := e.(*entity.Rectangle)
	rect := r.Rect.Normalized()
	// Transform the top-left world corner (min X, max Y) and size.
	tl := vt.WorldToScreen(geometry.Point2D{X: rect.X, Y: rect.Y + rect.Height})
	w := vt.WorldToScreenDistance(rect.Width)
	h := vt.WorldToScreenDistance(rect.Height)
	if int(stroke.Width)%2 == 1 {
		tl.X = transform.AlignHalfPixel(tl.X)
		tl.Y = transform.AlignHalfPixel(tl.Y)
	}
	dc.DrawRectangle(tl.X, tl.Y, w, h)
	dc.Stroke()
}
