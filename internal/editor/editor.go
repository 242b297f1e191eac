// Package editor wires the engine together: it owns the interaction
// state, routes normalized pointer and key events by active tool, and
// proposes new scene values to the host through callbacks. It has no
// UI dependency, the widget layer translates toolkit events into the
// calls here.
package editor

import (
	"log/slog"

	"draft-editor/internal/draw"
	"draft-editor/internal/grips"
	"draft-editor/internal/history"
	"draft-editor/internal/scene"
	"draft-editor/internal/selection"
	"draft-editor/internal/snap"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

// Tool is the active interaction tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPan
	ToolLine
	ToolPolyline
	ToolRectangle
	ToolCircle
	ToolArc
	ToolMeasure
	ToolZoomWindow
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolPan:
		return "pan"
	case ToolLine:
		return "line"
	case ToolPolyline:
		return "polyline"
	case ToolRectangle:
		return "rectangle"
	case ToolCircle:
		return "circle"
	case ToolArc:
		return "arc"
	case ToolMeasure:
		return "measure"
	case ToolZoomWindow:
		return "zoom window"
	}
	return "unknown"
}

// Target names the logical surface that consumes pointer input.
type Target int

const (
	TargetContent Target = iota
	TargetOverlay
)

// RouteFor is the input-routing policy. The select tool interacts
// with overlay decorations (grips, marquee), so the overlay consumes
// its events; every creation and measuring tool works against the
// content surface and the overlay must stay pointer-transparent.
func RouteFor(t Tool) Target {
	if t == ToolSelect {
		return TargetOverlay
	}
	return TargetContent
}

// gesture tracks which press-move-release interaction is in flight.
type gesture int

const (
	gestureNone gesture = iota
	gestureMarquee
	gestureLasso
	gesturePan
	gestureZoomWindow
	gestureMeasure
	gestureDrag
)

// Editor is the engine facade. It is single-goroutine: all calls must
// come from the UI event loop.
type Editor struct {
	log *slog.Logger

	scene    *scene.Scene
	view     transform.ViewTransform
	viewport transform.Viewport

	tool        Tool
	activeLayer string
	drawers     map[Tool]draw.Tool
	sel         *selection.Manager
	hist        *history.History
	snapper     *snap.Engine
	lastSnap    snap.Result

	// Grip machine. hotGrips are grips armed with shift-click for a
	// multi-grip drag; they survive until the selection or scene
	// changes.
	gripState grips.State
	hoverGrip *grips.Grip
	hotGrips  []grips.Grip
	session   *grips.DragSession

	gesture      gesture
	pressScreen  geometry.Point2D
	cursorScreen geometry.Point2D
	cursorWorld  geometry.Point2D
	marqueeEnd   geometry.Point2D
	lassoWorld   []geometry.Point2D

	measureFrom  geometry.Point2D
	measureTo    geometry.Point2D
	measureShown bool
	fitPoints    []geometry.Point2D

	// Host callbacks. All optional.
	OnSceneChange     func(*scene.Scene)
	OnSelectionChange func([]string)
	OnViewChange      func(transform.ViewTransform)
	OnOverlayChange   func()
	OnStatus          func(string)
	OnCursor          func(geometry.Point2D)
}

// New creates an editor over an empty scene. depth bounds the undo
// history; zero means the default.
func New(log *slog.Logger, depth int) *Editor {
	if log == nil {
		log = slog.Default()
	}
	return &Editor{
		log:     log.With("component", "editor"),
		scene:   scene.New(),
		view:    transform.Identity(),
		sel:     selection.NewManager(),
		hist:    history.New(depth),
		snapper: snap.NewEngine(snap.DefaultConfig()),
		drawers: map[Tool]draw.Tool{
			ToolLine:      draw.NewLineTool(),
			ToolPolyline:  draw.NewPolylineTool(),
			ToolRectangle: draw.NewRectangleTool(),
			ToolCircle:    draw.NewCircleTool(),
			ToolArc:       draw.NewArcTool(),
		},
	}
}

// Scene returns the current scene value. Callers must treat it as
// immutable; every mutation path goes through commands.
func (e *Editor) Scene() *scene.Scene {
	return e.scene
}

// SetScene replaces the scene wholesale, as on file open. History and
// selection reset; the view is untouched.
func (e *Editor) SetScene(sc *scene.Scene) {
	if sc == nil {
		sc = scene.New()
	}
	e.cancelGesture()
	e.hist.Clear()
	e.sel.Clear()
	e.clearHotGrips()
	e.scene = sc.Clone()
	e.fireScene()
	e.fireSelection()
	e.fireOverlay()
}

// View returns the current view transform.
func (e *Editor) View() transform.ViewTransform {
	return e.view
}

// SetView replaces the view transform, as when restoring a saved
// project view.
func (e *Editor) SetView(vt transform.ViewTransform) {
	e.setView(vt)
}

// Viewport returns the current viewport.
func (e *Editor) Viewport() transform.Viewport {
	return e.viewport
}

// SetViewport records the widget size used for fit and centering.
func (e *Editor) SetViewport(vp transform.Viewport) {
	e.viewport = vp
}

func (e *Editor) setView(vt transform.ViewTransform) {
	e.view = vt.Clamp()
	if e.OnViewChange != nil {
		e.OnViewChange(e.view)
	}
	e.fireOverlay()
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	return e.tool
}

// SetTool switches the active tool, cancelling any gesture or pending
// shape first.
func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.cancelGesture()
	if d, ok := e.drawers[e.tool]; ok {
		d.Cancel()
	}
	e.measureShown = false
	e.fitPoints = nil
	e.tool = t
	e.hoverGrip = nil
	e.gripState = grips.StateIdle
	e.status(t.String())
	e.fireOverlay()
}

// Snap returns the snap engine for configuration.
func (e *Editor) Snap() *snap.Engine {
	return e.snapper
}

// LastSnap returns the snap used for the most recent pointer
// position.
func (e *Editor) LastSnap() snap.Result {
	return e.lastSnap
}

// Selection returns the selected entity IDs in selection order.
func (e *Editor) Selection() []string {
	return e.sel.Selected()
}

// GripState returns the interaction state of the grip machine.
func (e *Editor) GripState() grips.State {
	return e.gripState
}

// CanUndo reports whether an undo step exists.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether a redo step exists.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// UndoName names the next undo step, or returns "".
func (e *Editor) UndoName() string { return e.hist.UndoName() }

// RedoName names the next redo step, or returns "".
func (e *Editor) RedoName() string { return e.hist.RedoName() }

// Undo rolls back one command. It is a no-op returning false when the
// undo stack is empty.
func (e *Editor) Undo() bool {
	e.cancelGesture()
	next, ok := e.hist.Undo(e.scene)
	if !ok {
		return false
	}
	e.adoptScene(next)
	return true
}

// Redo replays one undone command, no-op when nothing was undone.
func (e *Editor) Redo() bool {
	e.cancelGesture()
	next, ok := e.hist.Redo(e.scene)
	if !ok {
		return false
	}
	e.adoptScene(next)
	return true
}

// commit runs one command against the current scene and publishes the
// result. The scene value is replaced, never mutated.
func (e *Editor) commit(cmd history.Command) bool {
	next, err := e.hist.Execute(cmd, e.scene)
	if err != nil {
		e.log.Warn("command failed", "command", cmd.Name(), "error", err)
		return false
	}
	e.adoptScene(next)
	return true
}

// adoptScene installs a new scene value after a command, undo or
// redo: selection is pruned against it, selection flags re-stamped,
// stale grips dropped, and the host notified.
func (e *Editor) adoptScene(sc *scene.Scene) {
	pruned := e.sel.Prune(sc)
	e.sel.Apply(sc)
	e.scene = sc
	e.clearHotGrips()
	e.hoverGrip = nil
	e.fireScene()
	if pruned {
		e.fireSelection()
	}
	e.fireOverlay()
}

// publishSelection re-stamps selection flags onto a fresh scene clone.
// Only the selection and overlay callbacks fire: the drawing content is
// unchanged, so the scene host must not treat this as an edit.
func (e *Editor) publishSelection() {
	sc := e.scene.Clone()
	e.sel.Apply(sc)
	e.scene = sc
	e.clearHotGrips()
	e.fireSelection()
	e.fireOverlay()
}

func (e *Editor) clearHotGrips() {
	e.hotGrips = nil
}

func (e *Editor) fireScene() {
	if e.OnSceneChange != nil {
		e.OnSceneChange(e.scene)
	}
}

func (e *Editor) fireSelection() {
	if e.OnSelectionChange != nil {
		e.OnSelectionChange(e.sel.Selected())
	}
}

func (e *Editor) fireOverlay() {
	if e.OnOverlayChange != nil {
		e.OnOverlayChange()
	}
}

func (e *Editor) status(s string) {
	if e.OnStatus != nil {
		e.OnStatus(s)
	}
}
