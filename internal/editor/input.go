package editor

import (
	"fmt"

	"draft-editor/internal/entity"
	"draft-editor/internal/grips"
	"draft-editor/internal/history"
	"draft-editor/internal/hittest"
	"draft-editor/internal/measure"
	"draft-editor/internal/selection"
	"draft-editor/internal/snap"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

// Button is a normalized pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Key is a normalized key name. The widget layer maps toolkit key
// events onto these.
type Key string

const (
	KeyEscape Key = "Escape"
	KeyDelete Key = "Delete"
	KeyReturn Key = "Return"
	KeyUp     Key = "Up"
	KeyDown   Key = "Down"
	KeyLeft   Key = "Left"
	KeyRight  Key = "Right"
	KeyPlus   Key = "+"
	KeyMinus  Key = "-"
	KeyZero   Key = "0"
	KeyBreak  Key = "B"
)

// Modifiers carries the modifier keys held during an event.
type Modifiers struct {
	Shift bool
	Alt   bool
}

// clickSlopPx separates a click from a drag: a press and release
// within this many pixels is a click.
const clickSlopPx = 3.0

// nudgeStep is the arrow-key move distance in world units.
const nudgeStep = 1.0

// PointerDown begins a gesture. A press while another gesture is in
// flight is ignored, one gesture at a time.
func (e *Editor) PointerDown(screen geometry.Point2D, btn Button, mods Modifiers) {
	if e.gesture != gestureNone {
		return
	}
	e.trackCursor(screen)
	e.pressScreen = screen

	if btn == ButtonRight {
		e.finishTool(mods)
		return
	}

	switch RouteFor(e.tool) {
	case TargetOverlay:
		e.selectDown(screen, mods)
	case TargetContent:
		switch e.tool {
		case ToolPan:
			e.gesture = gesturePan
		case ToolZoomWindow:
			e.gesture = gestureZoomWindow
			e.marqueeEnd = screen
		case ToolMeasure:
			p, _ := e.snapPoint(screen, nil)
			e.gesture = gestureMeasure
			e.measureFrom = p
			e.measureTo = p
			e.measureShown = true
			e.fireOverlay()
		default:
			e.drawClick(screen)
		}
	}
}

// PointerMove updates whichever gesture is active and the hover and
// snap feedback when none is.
func (e *Editor) PointerMove(screen geometry.Point2D, mods Modifiers) {
	e.trackCursor(screen)

	switch e.gesture {
	case gestureDrag:
		e.updateDrag(screen)
	case gestureMarquee, gestureZoomWindow:
		e.marqueeEnd = screen
		e.fireOverlay()
	case gestureLasso:
		world := e.view.ScreenToWorld(screen)
		last := e.lassoWorld[len(e.lassoWorld)-1]
		if e.view.WorldToScreenDistance(world.Distance(last)) >= 1 {
			e.lassoWorld = append(e.lassoWorld, world)
		}
		e.fireOverlay()
	case gesturePan:
		e.setView(e.view.Pan(screen.X-e.pressScreen.X, screen.Y-e.pressScreen.Y))
		e.pressScreen = screen
	case gestureMeasure:
		p, _ := e.snapPoint(screen, nil)
		e.measureTo = p
		e.status(measure.Between(e.measureFrom, e.measureTo).Label())
		e.fireOverlay()
	case gestureNone:
		e.idleMove(screen)
	}
}

// PointerUp finishes the active gesture.
func (e *Editor) PointerUp(screen geometry.Point2D, mods Modifiers) {
	e.trackCursor(screen)
	g := e.gesture
	e.gesture = gestureNone

	switch g {
	case gestureDrag:
		e.endDrag()
	case gestureMarquee:
		e.commitMarquee(screen, mods)
	case gestureLasso:
		e.commitLasso(screen, mods)
	case gestureZoomWindow:
		e.commitZoomWindow(screen)
	case gestureMeasure:
		if screen.Distance(e.pressScreen) <= clickSlopPx {
			// A plain click collects a fit point instead of measuring.
			e.measureShown = false
			p, _ := e.snapPoint(screen, nil)
			e.fitPoints = append(e.fitPoints, p)
			e.status(fitStatus(len(e.fitPoints)))
		}
		e.fireOverlay()
	}
}

// DoubleClick finishes a pending polyline.
func (e *Editor) DoubleClick(screen geometry.Point2D, mods Modifiers) {
	e.finishTool(mods)
}

// Scroll zooms about the cursor.
func (e *Editor) Scroll(screen geometry.Point2D, deltaY float64) {
	if deltaY == 0 {
		return
	}
	factor := transform.ZoomStep
	if deltaY < 0 {
		factor = 1 / transform.ZoomStep
	}
	e.setView(e.view.ZoomAt(screen, factor))
}

// KeyDown handles the editing keys. Everything menu-driven (undo,
// save, tool switching) lives in the window layer.
func (e *Editor) KeyDown(k Key, mods Modifiers) {
	step := nudgeStep
	if mods.Shift {
		step *= 10
	}
	switch k {
	case KeyEscape:
		e.escape()
	case KeyDelete:
		e.DeleteSelection()
	case KeyReturn:
		e.finishTool(mods)
	case KeyUp:
		e.NudgeSelection(0, step)
	case KeyDown:
		e.NudgeSelection(0, -step)
	case KeyLeft:
		e.NudgeSelection(-step, 0)
	case KeyRight:
		e.NudgeSelection(step, 0)
	case KeyPlus:
		e.setView(e.view.ZoomIn(e.viewport.Center()))
	case KeyMinus:
		e.setView(e.view.ZoomOut(e.viewport.Center()))
	case KeyZero:
		e.setView(transform.Centered(e.viewport))
	case KeyBreak:
		e.breakAtHover()
	}
}

// CancelCapture aborts the active gesture, for pointer-capture loss.
func (e *Editor) CancelCapture() {
	if e.gesture == gestureNone {
		return
	}
	e.cancelGesture()
	e.fireOverlay()
}

// trackCursor records the cursor and tells the host.
func (e *Editor) trackCursor(screen geometry.Point2D) {
	e.cursorScreen = screen
	e.cursorWorld = e.view.ScreenToWorld(screen)
	if e.OnCursor != nil {
		e.OnCursor(e.cursorWorld)
	}
}

// snapPoint resolves the world position for a pointer event, snapped
// when the engine finds a target. ref is the drag base for
// perpendicular snap, nil outside drags.
func (e *Editor) snapPoint(screen geometry.Point2D, ref *geometry.Point2D) (geometry.Point2D, snap.Result) {
	res := e.snapper.Find(e.scene, e.view, screen, ref)
	e.lastSnap = res
	if res.Found {
		return res.Point, res
	}
	return e.view.ScreenToWorld(screen), res
}

// pickTol returns the pick tolerance in world units at current zoom.
func (e *Editor) pickTol() float64 {
	return e.view.ScreenToWorldDistance(hittest.DefaultTolerancePx)
}

// selectDown is the select tool press: grips first, then edge
// insertion on a selected entity, then entity selection, then
// marquee or lasso on empty space.
func (e *Editor) selectDown(screen geometry.Point2D, mods Modifiers) {
	if g, ok := grips.At(e.scene, e.view, screen, e.sel.Selected()); ok {
		if mods.Shift {
			e.toggleHotGrip(g)
			return
		}
		if g.Kind == grips.KindEdgeMidpoint && e.splitAtGrip(g, screen) {
			return
		}
		e.startDrag(g, screen)
		return
	}

	if !mods.Shift {
		if hit, ok := hittest.EdgeAt(e.scene, e.view, screen, hittest.DefaultTolerancePx); ok && e.sel.Contains(hit.Entity.EntityID()) {
			e.insertVertex(hit, screen)
			return
		}
	}

	if ent, ok := hittest.EntityAt(e.scene, e.view, screen, hittest.DefaultTolerancePx); ok {
		if e.scene.IsLayerLocked(ent.EntityStyle().Layer) {
			return
		}
		if mods.Shift {
			e.sel.Toggle(ent.EntityID())
		} else {
			e.sel.Replace([]string{ent.EntityID()})
		}
		e.publishSelection()
		return
	}

	if mods.Alt {
		e.gesture = gestureLasso
		e.lassoWorld = []geometry.Point2D{e.view.ScreenToWorld(screen)}
	} else {
		e.gesture = gestureMarquee
		e.marqueeEnd = screen
	}
	e.fireOverlay()
}

// toggleHotGrip arms or disarms a grip for a multi-grip drag.
func (e *Editor) toggleHotGrip(g grips.Grip) {
	for i, hot := range e.hotGrips {
		if hot == g {
			e.hotGrips = append(e.hotGrips[:i], e.hotGrips[i+1:]...)
			e.fireOverlay()
			return
		}
	}
	if g.Kind == grips.KindVertex {
		e.hotGrips = append(e.hotGrips, g)
	}
	e.fireOverlay()
}

func (e *Editor) startDrag(g grips.Grip, screen geometry.Point2D) {
	extra := e.hotGrips
	if !containsGrip(extra, g) {
		extra = nil
	}
	e.hotGrips = nil
	session, err := grips.NewDragSession(e.scene, g, extra)
	if err != nil {
		e.log.Warn("drag refused", "error", err)
		return
	}
	e.session = session
	e.gesture = gestureDrag
	e.gripState = grips.StateDragging
	e.hoverGrip = nil
	e.updateDrag(screen)
}

func (e *Editor) updateDrag(screen geometry.Point2D) {
	base := e.session.Base()
	p, _ := e.snapPoint(screen, &base)
	e.session.Update(p)
	e.fireOverlay()
}

func (e *Editor) endDrag() {
	session := e.session
	e.session = nil
	e.lastSnap = snap.Result{}

	closeTol := e.view.ScreenToWorldDistance(hittest.DefaultTolerancePx * hittest.AutoCloseFactor)
	before, after, ok := session.Commit(closeTol)
	if !ok {
		session.Cancel()
		e.gripState = grips.StateIdle
		e.fireOverlay()
		return
	}
	e.commit(history.NewReplaceEntities(replaceName(before, after), before, after))
	e.gripState = grips.StateCommitted
}

// splitAtGrip handles a press on a line or polyline edge-midpoint
// grip: the vertex insertion commits immediately and the press chains
// into a drag of the fresh vertex. A plain click therefore still
// performs the topology change, with the follow-up drag free to move
// the new vertex or not. Returns false for grips of other entity
// kinds, which stay ordinary drags.
func (e *Editor) splitAtGrip(g grips.Grip, screen geometry.Point2D) bool {
	ent, ok := e.scene.Get(g.EntityID)
	if !ok {
		return true
	}
	name := ""
	switch ent.(type) {
	case *entity.Line:
		name = "split line"
	case *entity.Polyline:
		name = "insert vertex"
	default:
		return false
	}
	at, ok := grips.PointOf(ent, g)
	if !ok {
		return true
	}
	converted, vg, err := grips.InsertOnEdge(ent, g.Index+1, at)
	if err != nil {
		e.log.Debug("vertex insertion aborted", "error", err)
		return true
	}
	if e.commit(history.NewReplaceEntities(name, []entity.Entity{ent}, []entity.Entity{converted})) {
		e.startDrag(vg, screen)
	}
	return true
}

// insertVertex converts an edge click on a selected line or polyline
// into a vertex insertion, then chains straight into a drag of the
// fresh vertex so press-move-release works in one gesture. Degenerate
// insertions abort without touching the entity.
func (e *Editor) insertVertex(hit hittest.EdgeHit, screen geometry.Point2D) {
	converted, g, err := grips.InsertOnEdge(hit.Entity, hit.InsertIndex, hit.Point)
	if err != nil {
		e.log.Debug("vertex insertion aborted", "error", err)
		return
	}
	name := "insert vertex"
	if hit.Entity.EntityKind() == entity.KindLine {
		name = "split line"
	}
	if !e.commit(history.NewReplaceEntities(name, []entity.Entity{hit.Entity}, []entity.Entity{converted})) {
		return
	}
	e.startDrag(g, screen)
}

// idleMove refreshes hover and snap feedback between gestures.
func (e *Editor) idleMove(screen geometry.Point2D) {
	switch RouteFor(e.tool) {
	case TargetOverlay:
		g, ok := grips.At(e.scene, e.view, screen, e.sel.Selected())
		switch {
		case ok:
			if e.hoverGrip == nil || *e.hoverGrip != g {
				e.hoverGrip = &g
				e.fireOverlay()
			}
			e.gripState = grips.StateHover
		default:
			if e.hoverGrip != nil {
				e.hoverGrip = nil
				e.fireOverlay()
			}
			e.gripState = grips.StateIdle
		}
	case TargetContent:
		if d, ok := e.drawers[e.tool]; ok {
			p, _ := e.snapPoint(screen, nil)
			d.Move(p)
			e.fireOverlay()
			return
		}
		if e.tool == ToolMeasure {
			e.snapPoint(screen, nil)
			e.fireOverlay()
		}
	}
}

func (e *Editor) drawClick(screen geometry.Point2D) {
	d, ok := e.drawers[e.tool]
	if !ok {
		return
	}
	p, _ := e.snapPoint(screen, nil)
	if ent, done := d.Click(p, e.pickTol()); done {
		e.addStamped(ent)
	}
	e.fireOverlay()
}

// finishTool completes whatever the active tool has pending: a
// polyline on Enter, or the measure tool's best fit through the
// collected points. Shift fits a circle instead of a line.
func (e *Editor) finishTool(mods Modifiers) {
	if d, ok := e.drawers[e.tool]; ok {
		if ent, done := d.Finish(); done {
			e.addStamped(ent)
		}
		e.fireOverlay()
		return
	}
	if e.tool != ToolMeasure || len(e.fitPoints) < 2 {
		return
	}
	var (
		fitted entity.Entity
		err    error
	)
	if mods.Shift && len(e.fitPoints) >= 3 {
		fitted, err = measure.FitCircle(e.fitPoints)
	} else {
		fitted, err = measure.FitLine(e.fitPoints)
	}
	if err != nil {
		e.log.Warn("fit failed", "points", len(e.fitPoints), "error", err)
		return
	}
	e.fitPoints = nil
	e.addStamped(fitted)
	e.fireOverlay()
}

// escape cancels the innermost thing first: active gesture, then
// pending shape, then measure leftovers, then the selection.
func (e *Editor) escape() {
	if e.session != nil {
		e.session.Cancel()
		e.session = nil
		e.gesture = gestureNone
		e.gripState = grips.StateCancelled
		e.fireOverlay()
		return
	}
	if e.gesture != gestureNone {
		e.cancelGesture()
		e.fireOverlay()
		return
	}
	if d, ok := e.drawers[e.tool]; ok && d.Pending() {
		d.Cancel()
		e.fireOverlay()
		return
	}
	if e.measureShown || len(e.fitPoints) > 0 {
		e.measureShown = false
		e.fitPoints = nil
		e.fireOverlay()
		return
	}
	if e.sel.Clear() {
		e.publishSelection()
	}
}

// cancelGesture drops any in-flight interaction without committing.
func (e *Editor) cancelGesture() {
	if e.session != nil {
		e.session.Cancel()
		e.session = nil
		e.gripState = grips.StateCancelled
	}
	e.gesture = gestureNone
	e.lassoWorld = nil
	e.lastSnap = snap.Result{}
}

func (e *Editor) commitMarquee(screen geometry.Point2D, mods Modifiers) {
	if screen.Distance(e.pressScreen) <= clickSlopPx {
		// A plain click on empty space clears the selection.
		if !mods.Shift && e.sel.Clear() {
			e.publishSelection()
		}
		e.fireOverlay()
		return
	}
	crossing := selection.MarqueeCrossing(e.pressScreen, screen)
	rect := geometry.NewRectFromPoints(e.view.ScreenToWorld(e.pressScreen), e.view.ScreenToWorld(screen))
	found := hittest.EntitiesInRect(e.scene, rect, crossing)
	e.applyPick(selection.SelectableIDs(e.scene, found), mods)
}

func (e *Editor) commitLasso(screen geometry.Point2D, mods Modifiers) {
	polygon := e.lassoWorld
	e.lassoWorld = nil
	if len(polygon) < 3 || screen.Distance(e.pressScreen) <= clickSlopPx {
		if !mods.Shift && e.sel.Clear() {
			e.publishSelection()
		}
		e.fireOverlay()
		return
	}
	crossing := selection.MarqueeCrossing(e.pressScreen, screen)
	found := hittest.EntitiesInPolygon(e.scene, polygon, crossing)
	e.applyPick(selection.SelectableIDs(e.scene, found), mods)
}

func (e *Editor) applyPick(ids []string, mods Modifiers) {
	if mods.Shift {
		e.sel.AddAll(ids)
	} else {
		e.sel.Replace(ids)
	}
	e.publishSelection()
}

func (e *Editor) commitZoomWindow(screen geometry.Point2D) {
	if screen.Distance(e.pressScreen) <= clickSlopPx {
		e.fireOverlay()
		return
	}
	rect := geometry.NewRectFromPoints(e.view.ScreenToWorld(e.pressScreen), e.view.ScreenToWorld(screen))
	e.setView(e.view.FitToView(rect, e.viewport))
}

// breakAtHover re-opens a closed polyline at the hovered edge
// midpoint grip.
func (e *Editor) breakAtHover() {
	if e.hoverGrip == nil || e.hoverGrip.Kind != grips.KindEdgeMidpoint {
		return
	}
	e.BreakAtEdge(e.hoverGrip.EntityID, e.hoverGrip.Index)
}

func containsGrip(list []grips.Grip, g grips.Grip) bool {
	for _, v := range list {
		if v == g {
			return true
		}
	}
	return false
}

func replaceName(before, after []entity.Entity) string {
	if len(before) == 1 {
		b, a := before[0], after[0]
		if b.EntityKind() == entity.KindLine && a.EntityKind() == entity.KindPolyline {
			return "split line"
		}
		if bp, ok := b.(*entity.Polyline); ok {
			if ap, ok2 := a.(*entity.Polyline); ok2 && !bp.Closed && ap.Closed {
				return "close polyline"
			}
		}
		return "move vertex"
	}
	return "move vertices"
}

func fitStatus(n int) string {
	if n == 1 {
		return "fit: 1 point"
	}
	return fmt.Sprintf("fit: %d points", n)
}
