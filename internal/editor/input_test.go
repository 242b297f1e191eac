package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draft-editor/internal/entity"
	"draft-editor/internal/grips"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

func TestRouteForPolicy(t *testing.T) {
	assert.Equal(t, TargetOverlay, RouteFor(ToolSelect))

	for _, tool := range []Tool{
		ToolPan, ToolLine, ToolPolyline, ToolRectangle,
		ToolCircle, ToolArc, ToolMeasure, ToolZoomWindow,
	} {
		assert.Equal(t, TargetContent, RouteFor(tool), tool.String())
	}
}

func TestLineToolDrawsUndoableLine(t *testing.T) {
	e := newTestEditor(t)
	e.SetTool(ToolLine)

	click(e, screenAt(0, 0), Modifiers{})
	assert.Equal(t, 0, e.Scene().Len(), "one pick is not a line yet")

	click(e, screenAt(100, 50), Modifiers{})
	require.Equal(t, 1, e.Scene().Len())

	line := e.Scene().Entities()[0].(*entity.Line)
	assert.Equal(t, geometry.NewPoint2D(0, 0), line.Start)
	assert.Equal(t, geometry.NewPoint2D(100, 50), line.End)
	assert.Equal(t, "add line", e.UndoName())

	require.True(t, e.Undo())
	assert.Equal(t, 0, e.Scene().Len())
}

func TestPolylineToolClosesOnFirstVertex(t *testing.T) {
	e := newTestEditor(t)
	e.SetTool(ToolPolyline)

	click(e, screenAt(0, 0), Modifiers{})
	click(e, screenAt(100, 0), Modifiers{})
	click(e, screenAt(100, 100), Modifiers{})
	// Clicking back near the start closes the ring.
	click(e, screenAt(2, 2), Modifiers{})

	require.Equal(t, 1, e.Scene().Len())
	pl := e.Scene().Entities()[0].(*entity.Polyline)
	assert.True(t, pl.Closed)
	require.Len(t, pl.Vertices, 3)
	assert.Equal(t, "add polyline", e.UndoName())
}

func TestRightClickFinishesOpenPolyline(t *testing.T) {
	e := newTestEditor(t)
	e.SetTool(ToolPolyline)

	click(e, screenAt(0, 0), Modifiers{})
	click(e, screenAt(50, 0), Modifiers{})
	click(e, screenAt(50, 50), Modifiers{})
	e.PointerDown(screenAt(50, 50), ButtonRight, Modifiers{})
	e.PointerUp(screenAt(50, 50), Modifiers{})

	require.Equal(t, 1, e.Scene().Len())
	pl := e.Scene().Entities()[0].(*entity.Polyline)
	assert.False(t, pl.Closed)
	assert.Len(t, pl.Vertices, 3)
}

func TestSetToolCancelsPendingShape(t *testing.T) {
	e := newTestEditor(t)
	e.SetTool(ToolLine)
	click(e, screenAt(0, 0), Modifiers{})

	e.SetTool(ToolSelect)
	assert.Equal(t, 0, e.Scene().Len())
	assert.False(t, e.CanUndo())

	// The abandoned first pick does not leak into the next shape.
	e.SetTool(ToolLine)
	click(e, screenAt(10, 0), Modifiers{})
	click(e, screenAt(50, 0), Modifiers{})
	require.Equal(t, 1, e.Scene().Len())
	line := e.Scene().Entities()[0].(*entity.Line)
	assert.Equal(t, geometry.NewPoint2D(10, 0), line.Start)
}

func TestEscapeCancelsPendingShape(t *testing.T) {
	e := newTestEditor(t)
	e.SetTool(ToolLine)
	click(e, screenAt(0, 0), Modifiers{})

	e.KeyDown(KeyEscape, Modifiers{})
	click(e, screenAt(10, 0), Modifiers{})
	assert.Equal(t, 0, e.Scene().Len(), "escape should restart the shape")
	assert.False(t, e.CanUndo())
}

func TestEscapeDuringDragRestoresScene(t *testing.T) {
	e := newTestEditor(t)
	a := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	require.True(t, e.AddEntity(a))
	click(e, screenAt(50, 0), Modifiers{})
	before := sceneJSON(t, e.Scene())

	e.PointerDown(screenAt(0, 0), ButtonLeft, Modifiers{})
	e.PointerMove(screenAt(40, 40), Modifiers{})
	e.KeyDown(KeyEscape, Modifiers{})

	assert.Equal(t, grips.StateCancelled, e.GripState())
	assert.Equal(t, before, sceneJSON(t, e.Scene()))
	assert.Equal(t, "add line", e.UndoName())

	// The trailing release of the aborted gesture is inert.
	e.PointerUp(screenAt(40, 40), Modifiers{})
	assert.Equal(t, before, sceneJSON(t, e.Scene()))
}

func TestEscapeClearsSelectionLast(t *testing.T) {
	e := newTestEditor(t)
	a := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	require.True(t, e.AddEntity(a))
	click(e, screenAt(50, 0), Modifiers{})
	require.NotEmpty(t, e.Selection())

	e.KeyDown(KeyEscape, Modifiers{})
	assert.Empty(t, e.Selection())

	// A second escape with nothing left is harmless.
	e.KeyDown(KeyEscape, Modifiers{})
}

func TestMeasureDragShowsReadout(t *testing.T) {
	e := newTestEditor(t)
	var lastStatus string
	e.OnStatus = func(s string) { lastStatus = s }
	e.SetTool(ToolMeasure)

	e.PointerDown(screenAt(0, 0), ButtonLeft, Modifiers{})
	e.PointerMove(screenAt(40, 30), Modifiers{})
	assert.Equal(t, "50.00 (dx 40.00, dy 30.00, 36.9°)", lastStatus)

	e.PointerUp(screenAt(40, 30), Modifiers{})
	ov := e.Overlay()
	require.NotNil(t, ov.Measure, "readout persists after release")
	assert.Equal(t, geometry.NewPoint2D(0, 0), ov.Measure.From)
	assert.Equal(t, geometry.NewPoint2D(40, 30), ov.Measure.To)
}

func TestMeasureClicksCollectPointsAndReturnFitsLine(t *testing.T) {
	e := newTestEditor(t)
	var lastStatus string
	e.OnStatus = func(s string) { lastStatus = s }
	e.SetTool(ToolMeasure)

	click(e, screenAt(0, 0), Modifiers{})
	assert.Equal(t, "fit: 1 point", lastStatus)
	click(e, screenAt(25, 25), Modifiers{})
	click(e, screenAt(50, 50), Modifiers{})
	assert.Equal(t, "fit: 3 points", lastStatus)

	e.KeyDown(KeyReturn, Modifiers{})
	require.Equal(t, 1, e.Scene().Len())
	line := e.Scene().Entities()[0].(*entity.Line)
	assert.InDelta(t, 0, line.Start.X, 1e-9)
	assert.InDelta(t, 0, line.Start.Y, 1e-9)
	assert.InDelta(t, 50, line.End.X, 1e-9)
	assert.InDelta(t, 50, line.End.Y, 1e-9)
	assert.Equal(t, "add line", e.UndoName())

	// The collected points are consumed by the fit.
	e.KeyDown(KeyReturn, Modifiers{})
	assert.Equal(t, 1, e.Scene().Len())
}

func TestMeasureShiftReturnFitsCircle(t *testing.T) {
	e := newTestEditor(t)
	e.SetTool(ToolMeasure)

	click(e, screenAt(10, 0), Modifiers{})
	click(e, screenAt(0, 10), Modifiers{})
	click(e, screenAt(-10, 0), Modifiers{})
	click(e, screenAt(0, -10), Modifiers{})

	e.KeyDown(KeyReturn, Modifiers{Shift: true})
	require.Equal(t, 1, e.Scene().Len())
	circle := e.Scene().Entities()[0].(*entity.Circle)
	assert.InDelta(t, 0, circle.Center.X, 1e-9)
	assert.InDelta(t, 0, circle.Center.Y, 1e-9)
	assert.InDelta(t, 10, circle.Radius, 1e-9)
	assert.Equal(t, "add circle", e.UndoName())
}

func TestKeyboardNudgeAndDelete(t *testing.T) {
	e := newTestEditor(t)
	a := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	require.True(t, e.AddEntity(a))
	click(e, screenAt(50, 0), Modifiers{})

	e.KeyDown(KeyRight, Modifiers{Shift: true})
	got, _ := e.Scene().Get(a.ID)
	assert.Equal(t, geometry.NewPoint2D(10, 0), got.(*entity.Line).Start)
	assert.Equal(t, "move entity", e.UndoName())

	e.KeyDown(KeyUp, Modifiers{})
	got, _ = e.Scene().Get(a.ID)
	assert.Equal(t, geometry.NewPoint2D(10, 1), got.(*entity.Line).Start)

	e.KeyDown(KeyDelete, Modifiers{})
	assert.Equal(t, 0, e.Scene().Len())
	assert.Empty(t, e.Selection())
	assert.Equal(t, "delete line", e.UndoName())

	require.True(t, e.Undo())
	got, ok := e.Scene().Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, geometry.NewPoint2D(10, 1), got.(*entity.Line).Start)
}

func TestNudgeWithoutSelectionIsNoOp(t *testing.T) {
	e := newTestEditor(t)
	a := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	require.True(t, e.AddEntity(a))

	e.KeyDown(KeyRight, Modifiers{})
	got, _ := e.Scene().Get(a.ID)
	assert.Equal(t, geometry.NewPoint2D(0, 0), got.(*entity.Line).Start)
	assert.Equal(t, "add line", e.UndoName())
}

func TestScrollZoomAnchorsCursor(t *testing.T) {
	e := newTestEditor(t)
	at := geometry.NewPoint2D(40, -40)
	worldBefore := e.View().ScreenToWorld(at)

	e.Scroll(at, 3)
	assert.InDelta(t, 1.25, e.View().Scale, 1e-9)
	after := e.View().ScreenToWorld(at)
	assert.InDelta(t, worldBefore.X, after.X, 1e-9)
	assert.InDelta(t, worldBefore.Y, after.Y, 1e-9)

	e.Scroll(at, -3)
	assert.InDelta(t, 1.0, e.View().Scale, 1e-9)
}

func TestKeyboardZoom(t *testing.T) {
	e := newTestEditor(t)
	center := e.Viewport().Center()
	worldBefore := e.View().ScreenToWorld(center)

	e.KeyDown(KeyPlus, Modifiers{})
	assert.InDelta(t, 1.25, e.View().Scale, 1e-9)
	after := e.View().ScreenToWorld(center)
	assert.InDelta(t, worldBefore.X, after.X, 1e-9)
	assert.InDelta(t, worldBefore.Y, after.Y, 1e-9)

	e.KeyDown(KeyZero, Modifiers{})
	assert.InDelta(t, 1.0, e.View().Scale, 1e-9)
	origin := e.View().ScreenToWorld(center)
	assert.InDelta(t, 0, origin.X, 1e-9)
	assert.InDelta(t, 0, origin.Y, 1e-9)
}

func TestZoomWindowFitsRegion(t *testing.T) {
	e := newTestEditor(t)
	e.SetTool(ToolZoomWindow)

	dragPointer(e, screenAt(100, 100), screenAt(300, 200), Modifiers{})

	assert.InDelta(t, 3.8, e.View().Scale, 1e-9)
	center := e.View().ScreenToWorld(e.Viewport().Center())
	assert.InDelta(t, 200, center.X, 1e-9)
	assert.InDelta(t, 150, center.Y, 1e-9)
}

func TestPanToolShiftsView(t *testing.T) {
	e := newTestEditor(t)
	e.SetTool(ToolPan)

	dragPointer(e, geometry.NewPoint2D(100, 100), geometry.NewPoint2D(160, 130), Modifiers{})

	// Screen origin now shows what used to be 60 pixels left and 30
	// pixels up.
	w := e.View().ScreenToWorld(geometry.NewPoint2D(0, 0))
	assert.InDelta(t, -60, w.X, 1e-9)
	assert.InDelta(t, 30, w.Y, 1e-9)
}

func TestBreakKeyReopensClosedPolyline(t *testing.T) {
	e := newTestEditor(t)
	tri := entity.NewPolyline([]geometry.Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100},
	}, true)
	require.True(t, e.AddEntity(tri))
	click(e, screenAt(50, 0), Modifiers{})
	require.Equal(t, []string{tri.ID}, e.Selection())

	// Hover the midpoint grip of the vertical edge, then break.
	e.PointerMove(screenAt(100, 50), Modifiers{})
	e.KeyDown(KeyBreak, Modifiers{})

	got := mustPolyline(t, e.Scene(), tri.ID)
	assert.False(t, got.Closed)
	require.Len(t, got.Vertices, 3)
	assert.Equal(t, geometry.NewPoint2D(100, 100), got.Vertices[0])
	assert.Equal(t, geometry.NewPoint2D(0, 0), got.Vertices[1])
	assert.Equal(t, geometry.NewPoint2D(100, 0), got.Vertices[2])
	assert.Equal(t, "break polyline", e.UndoName())

	require.True(t, e.Undo())
	got = mustPolyline(t, e.Scene(), tri.ID)
	assert.True(t, got.Closed)
}

func TestBreakKeyIgnoresOpenPolyline(t *testing.T) {
	e := newTestEditor(t)
	pl := entity.NewPolyline([]geometry.Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100},
	}, false)
	require.True(t, e.AddEntity(pl))
	click(e, screenAt(50, 0), Modifiers{})

	e.PointerMove(screenAt(50, 0), Modifiers{})
	e.KeyDown(KeyBreak, Modifiers{})

	got := mustPolyline(t, e.Scene(), pl.ID)
	assert.False(t, got.Closed)
	assert.Len(t, got.Vertices, 3)
	assert.Equal(t, "add polyline", e.UndoName())
}

func TestActiveLayerStampsNewEntities(t *testing.T) {
	e := newTestEditor(t)
	require.True(t, e.AddLayer(&scene.Layer{Name: "construction", Visible: true}))
	e.SetActiveLayer("construction")

	e.SetTool(ToolLine)
	click(e, screenAt(0, 0), Modifiers{})
	click(e, screenAt(50, 0), Modifiers{})

	require.Equal(t, 1, e.Scene().Len())
	assert.Equal(t, "construction", e.Scene().Entities()[0].EntityStyle().Layer)
}

func TestCallbacksReportChanges(t *testing.T) {
	e := newTestEditor(t)
	var sceneN, selN, viewN, overlayN int
	var lastSel []string
	var lastCursor geometry.Point2D
	e.OnSceneChange = func(*scene.Scene) { sceneN++ }
	e.OnSelectionChange = func(ids []string) { selN++; lastSel = ids }
	e.OnViewChange = func(transform.ViewTransform) { viewN++ }
	e.OnOverlayChange = func() { overlayN++ }
	e.OnCursor = func(p geometry.Point2D) { lastCursor = p }

	a := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	require.True(t, e.AddEntity(a))
	assert.Equal(t, 1, sceneN)

	click(e, screenAt(50, 0), Modifiers{})
	assert.Equal(t, []string{a.ID}, lastSel)
	assert.Positive(t, selN)
	assert.Positive(t, overlayN)

	e.PointerMove(geometry.NewPoint2D(30, -70), Modifiers{})
	assert.Equal(t, geometry.NewPoint2D(30, 70), lastCursor)

	e.Scroll(geometry.NewPoint2D(10, 10), 1)
	assert.Equal(t, 1, viewN)
}
