package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draft-editor/pkg/geometry"
)

func TestMeasurementReadout(t *testing.T) {
	m := Between(geometry.NewPoint2D(10, 20), geometry.NewPoint2D(50, 50))
	assert.InDelta(t, 40, m.DX(), 1e-9)
	assert.InDelta(t, 30, m.DY(), 1e-9)
	assert.InDelta(t, 50, m.Length(), 1e-9)
	assert.InDelta(t, 36.87, m.Angle(), 0.01)
	assert.Equal(t, "50.00 (dx 40.00, dy 30.00, 36.9°)", m.Label())
}

func TestMeasurementAngleNormalized(t *testing.T) {
	m := Between(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(0, -1))
	assert.InDelta(t, 270, m.Angle(), 1e-9)
}

func TestFitLineExact(t *testing.T) {
	tests := []struct {
		name   string
		points []geometry.Point2D
		start  geometry.Point2D
		end    geometry.Point2D
	}{
		{
			"horizontal",
			[]geometry.Point2D{{X: 0, Y: 5}, {X: 10, Y: 5}, {X: 20, Y: 5}},
			geometry.NewPoint2D(0, 5), geometry.NewPoint2D(20, 5),
		},
		{
			"vertical",
			[]geometry.Point2D{{X: 3, Y: 0}, {X: 3, Y: 10}, {X: 3, Y: 20}},
			geometry.NewPoint2D(3, 0), geometry.NewPoint2D(3, 20),
		},
		{
			"diagonal",
			[]geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10}},
			geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 10),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := FitLine(tt.points)
			require.NoError(t, err)
			assert.InDelta(t, tt.start.X, line.Start.X, 1e-9)
			assert.InDelta(t, tt.start.Y, line.Start.Y, 1e-9)
			assert.InDelta(t, tt.end.X, line.End.X, 1e-9)
			assert.InDelta(t, tt.end.Y, line.End.Y, 1e-9)
		})
	}
}

func TestFitLineLeastSquares(t *testing.T) {
	// Symmetric scatter around y = 1/3.
	line, err := FitLine([]geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, line.Start.Y, 1e-9)
	assert.InDelta(t, 1.0/3, line.End.Y, 1e-9)
}

func TestFitLineErrors(t *testing.T) {
	_, err := FitLine([]geometry.Point2D{{X: 1, Y: 1}})
	assert.Error(t, err)

	_, err = FitLine([]geometry.Point2D{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}})
	assert.Error(t, err, "coincident points have no direction")
}

func TestFitCircleExact(t *testing.T) {
	circle, err := FitCircle([]geometry.Point2D{
		{X: 10, Y: 0}, {X: 0, Y: 10}, {X: -10, Y: 0},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, circle.Center.X, 1e-9)
	assert.InDelta(t, 0, circle.Center.Y, 1e-9)
	assert.InDelta(t, 10, circle.Radius, 1e-9)
}

func TestFitCircleOverdetermined(t *testing.T) {
	circle, err := FitCircle([]geometry.Point2D{
		{X: 15, Y: 5}, {X: 5, Y: 15}, {X: -5, Y: 5}, {X: 5, Y: -5},
	})
	require.NoError(t, err)
	assert.InDelta(t, 5, circle.Center.X, 1e-9)
	assert.InDelta(t, 5, circle.Center.Y, 1e-9)
	assert.InDelta(t, 10, circle.Radius, 1e-9)
}

func TestFitCircleErrors(t *testing.T) {
	_, err := FitCircle([]geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}})
	assert.Error(t, err)

	_, err = FitCircle([]geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}})
	assert.Error(t, err, "collinear points define no circle")
}
