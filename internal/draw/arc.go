package draw

import (
	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

// ArcTool draws a counter-clockwise arc from three picks: the center,
// a point fixing radius and start angle, and a point fixing the end
// angle. While aiming the radius the preview is a plain ray.
type ArcTool struct {
	center     geometry.Point2D
	radius     float64
	startAngle float64

	stage      int
	previewRay *entity.Line
	previewArc *entity.Arc
}

func NewArcTool() *ArcTool {
	return &ArcTool{}
}

func (t *ArcTool) Name() string  { return "arc" }
func (t *ArcTool) Pending() bool { return t.stage > 0 }

func (t *ArcTool) Click(p geometry.Point2D, tol float64) (entity.Entity, bool) {
	switch t.stage {
	case 0:
		t.center = p
		t.previewRay = entity.NewLine(p, p)
		t.stage = 1
		return nil, false
	case 1:
		if p.Distance(t.center) <= tol {
			return nil, false
		}
		t.radius = p.Distance(t.center)
		t.startAngle = geometry.AngleOf(t.center, p)
		t.previewRay = nil
		t.previewArc = entity.NewArc(t.center, t.radius, t.startAngle, t.startAngle)
		t.stage = 2
		return nil, false
	default:
		// The end angle needs a usable direction from the center.
		if p.Distance(t.center) <= tol {
			return nil, false
		}
		arc := entity.NewArc(t.center, t.radius, t.startAngle, geometry.AngleOf(t.center, p))
		t.Cancel()
		return arc, true
	}
}

func (t *ArcTool) Move(p geometry.Point2D) {
	switch t.stage {
	case 1:
		t.previewRay.End = p
	case 2:
		if p.Distance(t.center) > 0 {
			t.previewArc.EndAngle = geometry.AngleOf(t.center, p)
		}
	}
}

func (t *ArcTool) Preview() entity.Entity {
	switch t.stage {
	case 1:
		return t.previewRay
	case 2:
		return t.previewArc
	}
	return nil
}

func (t *ArcTool) Finish() (entity.Entity, bool) {
	t.Cancel()
	return nil, false
}

func (t *ArcTool) Cancel() {
	t.stage = 0
	t.previewRay = nil
	t.previewArc = nil
}
