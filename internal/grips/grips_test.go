package grips

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

func TestHandlesPerKind(t *testing.T) {
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0))
	circle := entity.NewCircle(geometry.NewPoint2D(0, 0), 5)
	arc := entity.NewArc(geometry.NewPoint2D(0, 0), 5, 0, math.Pi)
	rect := entity.NewRectangle(geometry.NewRect(0, 0, 10, 6))
	open := entity.NewPolyline([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, false)
	closed := entity.NewPolyline([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, true)

	tests := []struct {
		name     string
		e        entity.Entity
		vertices int
		mids     int
	}{
		{"line", line, 2, 1},
		{"circle", circle, 1, 4},
		{"arc", arc, 3, 1},
		{"rectangle", rect, 4, 4},
		{"open polyline", open, 3, 2},
		{"closed polyline", closed, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handles := HandlesFor(tt.e)
			var vertices, mids int
			for _, h := range handles {
				assert.Equal(t, tt.e.EntityID(), h.Grip.EntityID)
				switch h.Grip.Kind {
				case KindVertex:
					vertices++
				case KindEdgeMidpoint:
					mids++
				}
			}
			assert.Equal(t, tt.vertices, vertices)
			assert.Equal(t, tt.mids, mids)
		})
	}
}

func TestHandlePositions(t *testing.T) {
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0))
	p, ok := PointOf(line, Grip{line.ID, KindEdgeMidpoint, 0})
	require.True(t, ok)
	assert.Equal(t, geometry.NewPoint2D(5, 0), p)

	circle := entity.NewCircle(geometry.NewPoint2D(10, 20), 5)
	p, ok = PointOf(circle, Grip{circle.ID, KindEdgeMidpoint, 1})
	require.True(t, ok)
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 25, p.Y, 1e-9)

	_, ok = PointOf(line, Grip{line.ID, KindVertex, 7})
	assert.False(t, ok)
}

func TestAtPrefersVertexOnTie(t *testing.T) {
	// Short line: at scale 1 the midpoint handle sits 5px from either
	// endpoint, inside the pick tolerance of both.
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0))
	sc := scene.New()
	sc.Add(line)
	vt := transform.Identity()

	cursor := vt.WorldToScreen(geometry.NewPoint2D(2.5, 0))
	g, ok := At(sc, vt, cursor, []string{line.ID})
	require.True(t, ok)
	assert.Equal(t, KindVertex, g.Kind)
	assert.Equal(t, 0, g.Index)
}

func TestAtRespectsToleranceAcrossZoom(t *testing.T) {
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	sc := scene.New()
	sc.Add(line)

	for _, scale := range []float64{0.05, 1, 40} {
		vt := transform.ViewTransform{Scale: scale, OffsetX: 300, OffsetY: 300}
		start := vt.WorldToScreen(line.Start)

		_, ok := At(sc, vt, start.Add(geometry.NewPoint2D(6, 0)), []string{line.ID})
		assert.True(t, ok, "6px off a grip should hit at scale %v", scale)

		_, ok = At(sc, vt, start.Add(geometry.NewPoint2D(30, 30)), []string{line.ID})
		assert.False(t, ok, "42px off a grip should miss at scale %v", scale)
	}
}

func TestApplyLineVertex(t *testing.T) {
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0))
	out, err := Apply(line, Grip{line.ID, KindVertex, 1}, geometry.NewPoint2D(10, 10))
	require.NoError(t, err)

	moved := out.(*entity.Line)
	assert.Equal(t, geometry.NewPoint2D(10, 10), moved.End)
	// Input untouched.
	assert.Equal(t, geometry.NewPoint2D(10, 0), line.End)
}

func TestApplyLineMidpointConvertsToPolyline(t *testing.T) {
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	out, err := Apply(line, Grip{line.ID, KindEdgeMidpoint, 0}, geometry.NewPoint2D(50, 30))
	require.NoError(t, err)

	pl, ok := out.(*entity.Polyline)
	require.True(t, ok)
	assert.Equal(t, line.ID, pl.ID, "conversion keeps the entity id")
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 50, Y: 30}, {X: 100, Y: 0}}, pl.Vertices)
	assert.False(t, pl.Closed)
}

func TestApplyCircleQuadrantSetsRadius(t *testing.T) {
	circle := entity.NewCircle(geometry.NewPoint2D(10, 10), 5)
	out, err := Apply(circle, Grip{circle.ID, KindEdgeMidpoint, 2}, geometry.NewPoint2D(2, 10))
	require.NoError(t, err)
	assert.InDelta(t, 8, out.(*entity.Circle).Radius, 1e-9)
}

func TestApplyArcEndpointReaims(t *testing.T) {
	arc := entity.NewArc(geometry.NewPoint2D(0, 0), 10, 0, math.Pi/2)
	out, err := Apply(arc, Grip{arc.ID, KindVertex, 2}, geometry.NewPoint2D(-7, 0))
	require.NoError(t, err)

	moved := out.(*entity.Arc)
	assert.InDelta(t, math.Pi, moved.EndAngle, 1e-9)
	assert.InDelta(t, 10, moved.Radius, 1e-9, "endpoint drag keeps the radius")
}

func TestApplyRectangleCornerKeepsOpposite(t *testing.T) {
	rect := entity.NewRectangle(geometry.NewRect(0, 0, 10, 6))
	out, err := Apply(rect, Grip{rect.ID, KindVertex, 0}, geometry.NewPoint2D(-4, -2))
	require.NoError(t, err)

	resized := out.(*entity.Rectangle)
	assert.Equal(t, geometry.NewRect(-4, -2, 14, 8), resized.Rect)
}

func TestApplyRectangleEdgeMovesOneSide(t *testing.T) {
	rect := entity.NewRectangle(geometry.NewRect(0, 0, 10, 6))
	out, err := Apply(rect, Grip{rect.ID, KindEdgeMidpoint, 1}, geometry.NewPoint2D(16, 3))
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(0, 0, 16, 6), out.(*entity.Rectangle).Rect)

	out, err = Apply(rect, Grip{rect.ID, KindEdgeMidpoint, 0}, geometry.NewPoint2D(5, -4))
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(0, -4, 10, 10), out.(*entity.Rectangle).Rect)
}

func TestApplyPolylineMidpointInsertsVertex(t *testing.T) {
	pl := entity.NewPolyline([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, true)

	// Closing segment runs from the last vertex back to the first; the
	// insert lands at the tail of the ring.
	out, err := Apply(pl, Grip{pl.ID, KindEdgeMidpoint, 2}, geometry.NewPoint2D(5, 5))
	require.NoError(t, err)

	inserted := out.(*entity.Polyline)
	require.Len(t, inserted.Vertices, 4)
	assert.Equal(t, geometry.NewPoint2D(5, 5), inserted.Vertices[3])
	assert.True(t, inserted.Closed)
}

func TestApplyRejectsForeignGrip(t *testing.T) {
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0))
	_, err := Apply(line, Grip{"other-id", KindVertex, 0}, geometry.NewPoint2D(1, 1))
	assert.Error(t, err)

	_, err = Apply(line, Grip{line.ID, KindEdgeMidpoint, 3}, geometry.NewPoint2D(1, 1))
	assert.Error(t, err)
}
