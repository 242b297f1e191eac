package draw

import (
	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

// PolylineTool draws a polyline vertex by vertex. Clicking back on
// the first vertex closes the ring; Enter or a double click finishes
// it open.
type PolylineTool struct {
	vertices []geometry.Point2D
	preview  *entity.Polyline
}

func NewPolylineTool() *PolylineTool {
	return &PolylineTool{}
}

func (t *PolylineTool) Name() string  { return "polyline" }
func (t *PolylineTool) Pending() bool { return len(t.vertices) > 0 }

func (t *PolylineTool) Click(p geometry.Point2D, tol float64) (entity.Entity, bool) {
	if len(t.vertices) == 0 {
		t.vertices = []geometry.Point2D{p}
		t.preview = entity.NewPolyline([]geometry.Point2D{p, p}, false)
		return nil, false
	}
	if len(t.vertices) >= 3 && p.Distance(t.vertices[0]) <= tol {
		pl := entity.NewPolyline(t.vertices, true)
		t.Cancel()
		return pl, true
	}
	if p.Distance(t.vertices[len(t.vertices)-1]) <= tol {
		return nil, false
	}
	t.vertices = append(t.vertices, p)
	t.Move(p)
	return nil, false
}

func (t *PolylineTool) Move(p geometry.Point2D) {
	if t.preview == nil {
		return
	}
	t.preview.Vertices = append(t.preview.Vertices[:0], t.vertices...)
	t.preview.Vertices = append(t.preview.Vertices, p)
}

func (t *PolylineTool) Preview() entity.Entity {
	if t.preview == nil {
		return nil
	}
	return t.preview
}

// Finish emits the open polyline collected so far. A single vertex is
// not a shape and is discarded.
func (t *PolylineTool) Finish() (entity.Entity, bool) {
	if len(t.vertices) < 2 {
		t.Cancel()
		return nil, false
	}
	pl := entity.NewPolyline(t.vertices, false)
	t.Cancel()
	return pl, true
}

func (t *PolylineTool) Cancel() {
	t.vertices = nil
	t.preview = nil
}
