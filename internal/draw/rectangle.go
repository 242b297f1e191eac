package draw

import (
	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

// RectangleTool draws an axis-aligned rectangle from two opposite
// corners.
type RectangleTool struct {
	anchor  geometry.Point2D
	preview *entity.Rectangle
}

func NewRectangleTool() *RectangleTool {
	return &RectangleTool{}
}

func (t *RectangleTool) Name() string  { return "rectangle" }
func (t *RectangleTool) Pending() bool { return t.preview != nil }

func (t *RectangleTool) Click(p geometry.Point2D, tol float64) (entity.Entity, bool) {
	if t.preview == nil {
		t.anchor = p
		t.preview = entity.NewRectangle(geometry.NewRectFromPoints(p, p))
		return nil, false
	}
	if p.Distance(t.anchor) <= tol {
		return nil, false
	}
	rect := entity.NewRectangle(geometry.NewRectFromPoints(t.anchor, p))
	t.Cancel()
	return rect, true
}

func (t *RectangleTool) Move(p geometry.Point2D) {
	if t.preview != nil {
		t.preview.Rect = geometry.NewRectFromPoints(t.anchor, p)
	}
}

func (t *RectangleTool) Preview() entity.Entity {
	if t.preview == nil {
		return nil
	}
	return t.preview
}

func (t *RectangleTool) Finish() (entity.Entity, bool) {
	t.Cancel()
	return nil, false
}

func (t *RectangleTool) Cancel() {
	t.preview = nil
}
