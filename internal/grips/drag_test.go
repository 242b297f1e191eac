package grips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/pkg/geometry"
)

func lineScene(t *testing.T) (*scene.Scene, *entity.Line) {
	t.Helper()
	sc := scene.New()
	l := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	sc.Add(l)
	return sc, l
}

func TestDragPreviewDependsOnlyOnTotalDelta(t *testing.T) {
	sc, l := lineScene(t)
	grip := Grip{l.ID, KindVertex, 1}

	wiggly, err := NewDragSession(sc, grip, nil)
	require.NoError(t, err)
	wiggly.Update(geometry.NewPoint2D(130, -40))
	wiggly.Update(geometry.NewPoint2D(7, 99))
	wiggly.Update(geometry.NewPoint2D(100, 50))

	direct, err := NewDragSession(sc, grip, nil)
	require.NoError(t, err)
	direct.Update(geometry.NewPoint2D(100, 50))

	require.Len(t, wiggly.Preview(), 1)
	require.Len(t, direct.Preview(), 1)
	assert.Equal(t, direct.Preview()[0].(*entity.Line).End, wiggly.Preview()[0].(*entity.Line).End)
	assert.Equal(t, geometry.NewPoint2D(100, 50), wiggly.Preview()[0].(*entity.Line).End)
}

func TestSceneUntouchedDuringDrag(t *testing.T) {
	sc, l := lineScene(t)
	s, err := NewDragSession(sc, Grip{l.ID, KindVertex, 1}, nil)
	require.NoError(t, err)
	s.Update(geometry.NewPoint2D(500, 500))

	inScene, _ := sc.Get(l.ID)
	assert.Equal(t, geometry.NewPoint2D(100, 0), inScene.(*entity.Line).End)
}

func TestZeroNetDeltaCommitIsNoOp(t *testing.T) {
	sc, l := lineScene(t)
	s, err := NewDragSession(sc, Grip{l.ID, KindVertex, 0}, nil)
	require.NoError(t, err)

	// Wander and come back to the start.
	s.Update(geometry.NewPoint2D(60, 10))
	s.Update(s.Base())

	_, _, ok := s.Commit(0)
	assert.False(t, ok)

	fresh, err := NewDragSession(sc, Grip{l.ID, KindVertex, 0}, nil)
	require.NoError(t, err)
	_, _, ok = fresh.Commit(0)
	assert.False(t, ok, "commit without any move is a no-op")
}

func TestCommitReturnsBeforeAfterPair(t *testing.T) {
	sc, l := lineScene(t)
	s, err := NewDragSession(sc, Grip{l.ID, KindVertex, 1}, nil)
	require.NoError(t, err)
	s.Update(geometry.NewPoint2D(100, 50))

	before, after, ok := s.Commit(0)
	require.True(t, ok)
	require.Len(t, before, 1)
	require.Len(t, after, 1)
	assert.Equal(t, geometry.NewPoint2D(100, 0), before[0].(*entity.Line).End)
	assert.Equal(t, geometry.NewPoint2D(100, 50), after[0].(*entity.Line).End)
}

func TestMultiGripUniformDelta(t *testing.T) {
	sc := scene.New()
	a := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0))
	b := entity.NewLine(geometry.NewPoint2D(100, 100), geometry.NewPoint2D(110, 100))
	sc.Add(a)
	sc.Add(b)

	s, err := NewDragSession(sc, Grip{a.ID, KindVertex, 0}, []Grip{{b.ID, KindVertex, 1}})
	require.NoError(t, err)
	s.Update(geometry.NewPoint2D(3, 4))

	preview := s.Preview()
	require.Len(t, preview, 2)
	assert.Equal(t, geometry.NewPoint2D(3, 4), preview[0].(*entity.Line).Start)
	assert.Equal(t, geometry.NewPoint2D(113, 104), preview[1].(*entity.Line).End)
	// Unselected endpoints stay put.
	assert.Equal(t, geometry.NewPoint2D(10, 0), preview[0].(*entity.Line).End)
	assert.Equal(t, geometry.NewPoint2D(100, 100), preview[1].(*entity.Line).Start)
}

func TestMultiGripRejectsTopologyGrips(t *testing.T) {
	sc, l := lineScene(t)
	other := entity.NewLine(geometry.NewPoint2D(0, 50), geometry.NewPoint2D(100, 50))
	sc.Add(other)

	_, err := NewDragSession(sc, Grip{l.ID, KindVertex, 0}, []Grip{{other.ID, KindEdgeMidpoint, 0}})
	assert.Error(t, err)
}

func TestEdgeMidpointDragConvertsLine(t *testing.T) {
	sc, l := lineScene(t)
	s, err := NewDragSession(sc, Grip{l.ID, KindEdgeMidpoint, 0}, nil)
	require.NoError(t, err)
	s.Update(geometry.NewPoint2D(50, 30))

	before, after, ok := s.Commit(0)
	require.True(t, ok)
	assert.Equal(t, entity.KindLine, before[0].EntityKind())

	pl, isPolyline := after[0].(*entity.Polyline)
	require.True(t, isPolyline)
	assert.Equal(t, l.ID, pl.ID)
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 50, Y: 30}, {X: 100, Y: 0}}, pl.Vertices)
}

func openSquare(sc *scene.Scene) *entity.Polyline {
	pl := entity.NewPolyline([]geometry.Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
	}, false)
	sc.Add(pl)
	return pl
}

func TestAutoCloseKeepsVertexCount(t *testing.T) {
	sc := scene.New()
	pl := openSquare(sc)

	s, err := NewDragSession(sc, Grip{pl.ID, KindVertex, 3}, nil)
	require.NoError(t, err)
	s.Update(geometry.NewPoint2D(0, 3))

	_, after, ok := s.Commit(10)
	require.True(t, ok)

	closed := after[0].(*entity.Polyline)
	assert.True(t, closed.Closed)
	require.Len(t, closed.Vertices, 4, "closing adds no duplicate vertex")
	assert.Equal(t, geometry.NewPoint2D(0, 3), closed.Vertices[3])
}

func TestAutoCloseExactLandingDropsDraggedVertex(t *testing.T) {
	sc := scene.New()
	pl := openSquare(sc)

	s, err := NewDragSession(sc, Grip{pl.ID, KindVertex, 3}, nil)
	require.NoError(t, err)
	// A snapped drag lands exactly on the opposite endpoint.
	s.Update(geometry.NewPoint2D(0, 0))

	_, after, ok := s.Commit(10)
	require.True(t, ok)

	closed := after[0].(*entity.Polyline)
	assert.True(t, closed.Closed)
	assert.Len(t, closed.Vertices, 3)
}

func TestAutoCloseOnlyOnEndVertices(t *testing.T) {
	sc := scene.New()
	pl := openSquare(sc)

	s, err := NewDragSession(sc, Grip{pl.ID, KindVertex, 1}, nil)
	require.NoError(t, err)
	s.Update(geometry.NewPoint2D(0, 2))

	_, after, ok := s.Commit(10)
	require.True(t, ok)
	assert.False(t, after[0].(*entity.Polyline).Closed, "interior vertex drags never close")
}

func TestAutoCloseDisabledWithZeroTolerance(t *testing.T) {
	sc := scene.New()
	pl := openSquare(sc)

	s, err := NewDragSession(sc, Grip{pl.ID, KindVertex, 3}, nil)
	require.NoError(t, err)
	s.Update(geometry.NewPoint2D(0, 3))

	_, after, ok := s.Commit(0)
	require.True(t, ok)
	assert.False(t, after[0].(*entity.Polyline).Closed)
}

func TestCommitAbortsOnInvalidResult(t *testing.T) {
	sc := scene.New()
	c := entity.NewCircle(geometry.NewPoint2D(0, 0), 5)
	sc.Add(c)

	s, err := NewDragSession(sc, Grip{c.ID, KindEdgeMidpoint, 0}, nil)
	require.NoError(t, err)
	// Collapse the radius to zero.
	s.Update(geometry.NewPoint2D(0, 0))

	_, _, ok := s.Commit(0)
	assert.False(t, ok)
}

func TestCancelDiscardsPreview(t *testing.T) {
	sc, l := lineScene(t)
	s, err := NewDragSession(sc, Grip{l.ID, KindVertex, 0}, nil)
	require.NoError(t, err)
	s.Update(geometry.NewPoint2D(50, 50))

	s.Cancel()
	assert.Empty(t, s.Preview())

	inScene, _ := sc.Get(l.ID)
	assert.Equal(t, geometry.NewPoint2D(0, 0), inScene.(*entity.Line).Start)
}
