package editor

import (
	"draft-editor/internal/entity"
	"draft-editor/internal/grips"
	"draft-editor/internal/measure"
	"draft-editor/internal/render"
	"draft-editor/internal/selection"
	"draft-editor/pkg/geometry"
)

// Overlay assembles the decoration model for the overlay surface from
// the current interaction state. Hosts call it after every
// OnOverlayChange and hand the result to the overlay painter.
func (e *Editor) Overlay() render.Overlay {
	var ov render.Overlay

	switch e.gesture {
	case gestureMarquee:
		ov.Marquee = &render.Marquee{
			Start:    e.view.ScreenToWorld(e.pressScreen),
			Current:  e.view.ScreenToWorld(e.marqueeEnd),
			Crossing: selection.MarqueeCrossing(e.pressScreen, e.marqueeEnd),
		}
	case gestureZoomWindow:
		ov.Marquee = &render.Marquee{
			Start:   e.view.ScreenToWorld(e.pressScreen),
			Current: e.view.ScreenToWorld(e.marqueeEnd),
		}
	case gestureLasso:
		ov.Lasso = e.lassoWorld
	}

	ov.Preview = e.previewEntities()
	ov.Grips = e.gripMarks()

	if e.lastSnap.Found && e.snapVisible() {
		ov.Snap = &render.SnapMark{Pos: e.lastSnap.Point, Mode: e.lastSnap.Mode}
	}
	if e.measureShown {
		m := measure.Measurement{From: e.measureFrom, To: e.measureTo}
		ov.Measure = &render.Measure{From: m.From, To: m.To, Label: m.Label()}
	}
	if e.crosshairVisible() {
		at := e.cursorWorld
		if e.lastSnap.Found {
			at = e.lastSnap.Point
		}
		ov.Crosshair = &at
	}
	return ov
}

// previewEntities picks the provisional geometry for this frame: the
// drag ghost, the active drawing tool's rubber band, or the live line
// fit over collected measure points.
func (e *Editor) previewEntities() []entity.Entity {
	if e.session != nil {
		return e.session.Preview()
	}
	if d, ok := e.drawers[e.tool]; ok && d.Pending() {
		if p := d.Preview(); p != nil {
			return []entity.Entity{p}
		}
		return nil
	}
	if e.tool == ToolMeasure && len(e.fitPoints) >= 2 {
		if line, err := measure.FitLine(e.fitPoints); err == nil {
			st := line.EntityStyle()
			st.LineType = entity.LineTypeDashed
			line.SetStyle(st)
			return []entity.Entity{line}
		}
	}
	return nil
}

// gripMarks lists the handles of the selected entities. During a drag
// the marks follow the preview so handles stay glued to the ghost.
func (e *Editor) gripMarks() []render.GripMark {
	ids := e.sel.Selected()
	if len(ids) == 0 {
		return nil
	}

	previews := map[string]entity.Entity{}
	var sessionGrips []grips.Grip
	var dragged []geometry.Point2D
	if e.session != nil {
		for _, p := range e.session.Preview() {
			previews[p.EntityID()] = p
		}
		sessionGrips = e.session.Grips()
		dragged = e.session.DraggedPoints()
	}

	var marks []render.GripMark
	for _, id := range ids {
		ent, ok := e.scene.Get(id)
		if !ok {
			continue
		}
		if p, hasPreview := previews[id]; hasPreview {
			ent = p
		}
		for _, h := range grips.HandlesFor(ent) {
			hot := e.isHotGrip(h.Grip, sessionGrips)
			if !hot {
				// Topology changes renumber grips mid-drag, so fall
				// back to matching the dragged position itself.
				for _, dp := range dragged {
					if h.Point.Distance(dp) < 1e-7 {
						hot = true
						break
					}
				}
			}
			marks = append(marks, render.GripMark{Pos: h.Point, Hot: hot})
		}
	}
	return marks
}

func (e *Editor) isHotGrip(g grips.Grip, sessionGrips []grips.Grip) bool {
	if e.hoverGrip != nil && *e.hoverGrip == g {
		return true
	}
	if containsGrip(e.hotGrips, g) {
		return true
	}
	return containsGrip(sessionGrips, g)
}

func (e *Editor) snapVisible() bool {
	if e.gesture == gestureDrag || e.gesture == gestureMeasure {
		return true
	}
	if _, isDrawer := e.drawers[e.tool]; isDrawer {
		return true
	}
	return e.tool == ToolMeasure
}

func (e *Editor) crosshairVisible() bool {
	if _, isDrawer := e.drawers[e.tool]; isDrawer {
		return true
	}
	return e.tool == ToolMeasure
}
