package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

func screenAt(vt transform.ViewTransform, wx, wy, dxPx, dyPx float64) geometry.Point2D {
	s := vt.WorldToScreen(geometry.NewPoint2D(wx, wy))
	return geometry.NewPoint2D(s.X+dxPx, s.Y+dyPx)
}

func TestEndpointBeatsCloserMidpoint(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(16, 0)))
	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())

	// Cursor at (11, 0): 3 units from the midpoint, 5 from the end.
	// Both are inside tolerance; the endpoint still wins on rank.
	r := eng.Find(s, vt, screenAt(vt, 11, 0, 0, 0), nil)
	require.True(t, r.Found)
	assert.Equal(t, ModeEndpoint, r.Mode)
	assert.InDelta(t, 16.0, r.Point.X, 1e-9)
	assert.InDelta(t, 0.0, r.Point.Y, 1e-9)
}

func TestMidpointWhenEndpointsOutOfReach(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0)))
	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())

	r := eng.Find(s, vt, screenAt(vt, 48, 0, 0, 0), nil)
	require.True(t, r.Found)
	assert.Equal(t, ModeMidpoint, r.Mode)
	assert.InDelta(t, 50.0, r.Point.X, 1e-9)
}

func TestCenterSnap(t *testing.T) {
	s := scene.New()
	c := entity.NewCircle(geometry.NewPoint2D(40, 40), 30)
	s.Add(c)
	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())

	r := eng.Find(s, vt, screenAt(vt, 40, 40, 3, 3), nil)
	require.True(t, r.Found)
	assert.Equal(t, ModeCenter, r.Mode)
	assert.Equal(t, c.ID, r.EntityID)
	assert.InDelta(t, 40.0, r.Point.X, 1e-9)
	assert.InDelta(t, 40.0, r.Point.Y, 1e-9)
}

func TestIntersectionOfTwoLines(t *testing.T) {
	s := scene.New()
	// The crossing at (60, 60) is away from both midpoints, so the
	// intersection mode is the one that fires.
	a := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 100))
	b := entity.NewLine(geometry.NewPoint2D(20, 60), geometry.NewPoint2D(140, 60))
	s.Add(a)
	s.Add(b)
	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())

	r := eng.Find(s, vt, screenAt(vt, 60, 60, 4, 0), nil)
	require.True(t, r.Found)
	assert.Equal(t, ModeIntersection, r.Mode)
	assert.InDelta(t, 60.0, r.Point.X, 1e-9)
	assert.InDelta(t, 60.0, r.Point.Y, 1e-9)
	assert.Equal(t, a.ID, r.EntityID)
	assert.Equal(t, b.ID, r.OtherID)
}

func TestIntersectionLineCircleIsExact(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewCircle(geometry.NewPoint2D(0, 0), 50))
	s.Add(entity.NewLine(geometry.NewPoint2D(-100, 0), geometry.NewPoint2D(100, 0)))
	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())

	r := eng.Find(s, vt, screenAt(vt, 50, 0, 3, 3), nil)
	require.True(t, r.Found)
	assert.Equal(t, ModeIntersection, r.Mode)
	assert.InDelta(t, 50.0, r.Point.X, 1e-9)
	assert.InDelta(t, 0.0, r.Point.Y, 1e-9)
}

func TestIntersectionCircleCircle(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewCircle(geometry.NewPoint2D(0, 0), 50))
	s.Add(entity.NewCircle(geometry.NewPoint2D(80, 0), 50))
	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())

	r := eng.Find(s, vt, screenAt(vt, 40, 30, 2, -2), nil)
	require.True(t, r.Found)
	assert.Equal(t, ModeIntersection, r.Mode)
	assert.InDelta(t, 40.0, r.Point.X, 1e-9)
	assert.InDelta(t, 30.0, r.Point.Y, 1e-9)
}

func TestPerpendicularNeedsRefPoint(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0)))
	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())

	// Away from endpoints and midpoint, over the line body.
	cursor := screenAt(vt, 30, 0, 0, -3)

	r := eng.Find(s, vt, cursor, nil)
	assert.False(t, r.Found)

	ref := geometry.NewPoint2D(30, 40)
	r = eng.Find(s, vt, cursor, &ref)
	require.True(t, r.Found)
	assert.Equal(t, ModePerpendicular, r.Mode)
	assert.InDelta(t, 30.0, r.Point.X, 1e-9)
	assert.InDelta(t, 0.0, r.Point.Y, 1e-9)
}

func TestDisabledModeIsSkipped(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(16, 0)))
	vt := transform.Identity()

	cfg := DefaultConfig()
	cfg.Modes[ModeEndpoint] = false
	eng := NewEngine(cfg)

	r := eng.Find(s, vt, screenAt(vt, 11, 0, 0, 0), nil)
	require.True(t, r.Found)
	assert.Equal(t, ModeMidpoint, r.Mode)
	assert.InDelta(t, 8.0, r.Point.X, 1e-9)
}

func TestDisabledEngineFindsNothing(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(16, 0)))
	vt := transform.Identity()

	cfg := DefaultConfig()
	cfg.Enabled = false
	eng := NewEngine(cfg)

	r := eng.Find(s, vt, screenAt(vt, 16, 0, 0, 0), nil)
	assert.False(t, r.Found)
}

func TestToleranceIsZoomInvariant(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0)))
	eng := NewEngine(DefaultConfig())

	for _, scale := range []float64{0.1, 1, 100} {
		vt := transform.ViewTransform{Scale: scale}

		r := eng.Find(s, vt, screenAt(vt, 100, 0, 6, 0), nil)
		assert.True(t, r.Found, "scale %v: 6px off should snap", scale)
		assert.Equal(t, ModeEndpoint, r.Mode)

		r = eng.Find(s, vt, screenAt(vt, 100, 0, 14, 0), nil)
		assert.False(t, r.Found, "scale %v: 14px off should not snap", scale)
	}
}

func TestEachMoveReevaluates(t *testing.T) {
	s := scene.New()
	s.Add(entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0)))
	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())

	first := eng.Find(s, vt, screenAt(vt, 0, 0, 2, 0), nil)
	require.True(t, first.Found)
	assert.Equal(t, ModeEndpoint, first.Mode)

	second := eng.Find(s, vt, screenAt(vt, 50, 0, 2, 0), nil)
	require.True(t, second.Found)
	assert.Equal(t, ModeMidpoint, second.Mode)

	third := eng.Find(s, vt, screenAt(vt, 30, 40, 0, 0), nil)
	assert.False(t, third.Found)
}

func TestSnapSkipsHiddenLayers(t *testing.T) {
	s := scene.New()
	s.AddLayer(&scene.Layer{Name: "hidden", Visible: false})
	l := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	st := l.Style
	st.Layer = "hidden"
	l.SetStyle(st)
	s.Add(l)

	vt := transform.Identity()
	eng := NewEngine(DefaultConfig())
	r := eng.Find(s, vt, screenAt(vt, 0, 0, 0, 0), nil)
	assert.False(t, r.Found)
}
