package draw

import (
	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

// LineTool draws a line from two picked points.
type LineTool struct {
	start   geometry.Point2D
	preview *entity.Line
}

func NewLineTool() *LineTool {
	return &LineTool{}
}

func (t *LineTool) Name() string  { return "line" }
func (t *LineTool) Pending() bool { return t.preview != nil }

func (t *LineTool) Click(p geometry.Point2D, tol float64) (entity.Entity, bool) {
	if t.preview == nil {
		t.start = p
		t.preview = entity.NewLine(p, p)
		return nil, false
	}
	if p.Distance(t.start) <= tol {
		return nil, false
	}
	line := entity.NewLine(t.start, p)
	t.Cancel()
	return line, true
}

func (t *LineTool) Move(p geometry.Point2D) {
	if t.preview != nil {
		t.preview.End = p
	}
}

func (t *LineTool) Preview() entity.Entity {
	if t.preview == nil {
		return nil
	}
	return t.preview
}

func (t *LineTool) Finish() (entity.Entity, bool) {
	t.Cancel()
	return nil, false
}

func (t *LineTool) Cancel() {
	t.preview = nil
}
