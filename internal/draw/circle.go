package draw

import (
	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

// CircleTool draws a circle from its center and a point on the
// circumference.
type CircleTool struct {
	center  geometry.Point2D
	preview *entity.Circle
}

func NewCircleTool() *CircleTool {
	return &CircleTool{}
}

func (t *CircleTool) Name() string  { return "circle" }
func (t *CircleTool) Pending() bool { return t.preview != nil }

func (t *CircleTool) Click(p geometry.Point2D, tol float64) (entity.Entity, bool) {
	if t.preview == nil {
		t.center = p
		t.preview = entity.NewCircle(p, 0)
		return nil, false
	}
	radius := p.Distance(t.center)
	if radius <= tol {
		return nil, false
	}
	circle := entity.NewCircle(t.center, radius)
	t.Cancel()
	return circle, true
}

func (t *CircleTool) Move(p geometry.Point2D) {
	if t.preview != nil {
		t.preview.Radius = p.Distance(t.center)
	}
}

func (t *CircleTool) Preview() entity.Entity {
	if t.preview == nil {
		return nil
	}
	return t.preview
}

func (t *CircleTool) Finish() (entity.Entity, bool) {
	t.Cancel()
	return nil, false
}

func (t *CircleTool) Cancel() {
	t.preview = nil
}
