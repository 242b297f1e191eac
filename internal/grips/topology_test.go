package grips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

func TestInsertOnLineEdge(t *testing.T) {
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))

	out, grip, err := InsertOnEdge(line, 1, geometry.NewPoint2D(50, 0))
	require.NoError(t, err)

	pl := out.(*entity.Polyline)
	assert.Equal(t, line.ID, pl.ID)
	assert.Equal(t, []geometry.Point2D{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}}, pl.Vertices)
	assert.Equal(t, Grip{line.ID, KindVertex, 1}, grip)

	// The original line is untouched.
	assert.Equal(t, geometry.NewPoint2D(0, 0), line.Start)
}

func TestInsertOnPolylineEdge(t *testing.T) {
	pl := entity.NewPolyline([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, false)

	out, grip, err := InsertOnEdge(pl, 2, geometry.NewPoint2D(10, 5))
	require.NoError(t, err)

	inserted := out.(*entity.Polyline)
	require.Len(t, inserted.Vertices, 4)
	assert.Equal(t, geometry.NewPoint2D(10, 5), inserted.Vertices[2])
	assert.Equal(t, 2, grip.Index)
	assert.Len(t, pl.Vertices, 3, "input stays unchanged")
}

func TestInsertRefusesCoincidentPoint(t *testing.T) {
	line := entity.NewLine(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0))
	_, _, err := InsertOnEdge(line, 1, geometry.NewPoint2D(100, 0))
	assert.Error(t, err)

	pl := entity.NewPolyline([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}}, false)
	_, _, err = InsertOnEdge(pl, 1, geometry.NewPoint2D(0, 0))
	assert.Error(t, err)
}

func TestInsertRejectsUnsupportedKinds(t *testing.T) {
	c := entity.NewCircle(geometry.NewPoint2D(0, 0), 5)
	_, _, err := InsertOnEdge(c, 1, geometry.NewPoint2D(5, 0))
	assert.Error(t, err)
}

func TestBreakAtEdge(t *testing.T) {
	ring := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	pl := entity.NewPolyline(ring, true)

	// Removing segment 1 (10,0)->(10,10) leaves the walk starting at
	// the segment's far vertex.
	out, err := BreakAtEdge(pl, 1)
	require.NoError(t, err)

	assert.False(t, out.Closed)
	assert.Equal(t, []geometry.Point2D{
		{X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}, {X: 10, Y: 0},
	}, out.Vertices)
	assert.Equal(t, 3, out.SegmentCount())

	// Breaking the closing segment keeps the original vertex order.
	out, err = BreakAtEdge(pl, 3)
	require.NoError(t, err)
	assert.Equal(t, ring, out.Vertices)
	assert.True(t, pl.Closed, "input stays unchanged")
}

func TestBreakRequiresClosedPolyline(t *testing.T) {
	pl := entity.NewPolyline([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, false)
	_, err := BreakAtEdge(pl, 0)
	assert.Error(t, err)

	closed := entity.NewPolyline([]geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, true)
	_, err = BreakAtEdge(closed, 9)
	assert.Error(t, err)
}
