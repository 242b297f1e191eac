package measure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

// FitLine fits a least-squares line through the points and returns it
// as a line entity spanning the extent of the input. The regression
// runs along the dominant axis so near-vertical picks fit as well as
// near-horizontal ones.
func FitLine(points []geometry.Point2D) (*entity.Line, error) {
	n := len(points)
	if n < 2 {
		return nil, fmt.Errorf("line fit needs at least 2 points, got %d", n)
	}

	bounds := geometry.BoundingBox(points)
	alongX := bounds.Width >= bounds.Height
	if bounds.Width == 0 && bounds.Height == 0 {
		return nil, fmt.Errorf("line fit: all points coincide")
	}

	// Solve t*slope + intercept = u for the dominant axis t.
	A := mat.NewDense(n, 2, nil)
	B := mat.NewVecDense(n, nil)
	for i, p := range points {
		t, u := p.X, p.Y
		if !alongX {
			t, u = p.Y, p.X
		}
		A.Set(i, 0, t)
		A.Set(i, 1, 1)
		B.SetVec(i, u)
	}

	var qr mat.QR
	qr.Factorize(A)
	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return nil, fmt.Errorf("line fit: %w", err)
	}
	slope, intercept := params.AtVec(0), params.AtVec(1)

	if alongX {
		x0, x1 := bounds.X, bounds.X+bounds.Width
		return entity.NewLine(
			geometry.NewPoint2D(x0, slope*x0+intercept),
			geometry.NewPoint2D(x1, slope*x1+intercept),
		), nil
	}
	y0, y1 := bounds.Y, bounds.Y+bounds.Height
	return entity.NewLine(
		geometry.NewPoint2D(slope*y0+intercept, y0),
		geometry.NewPoint2D(slope*y1+intercept, y1),
	), nil
}

// FitCircle fits a least-squares circle through the points using the
// algebraic formulation: x²+y² = 2·cx·x + 2·cy·y + (r² - cx² - cy²).
func FitCircle(points []geometry.Point2D) (*entity.Circle, error) {
	n := len(points)
	if n < 3 {
		return nil, fmt.Errorf("circle fit needs at least 3 points, got %d", n)
	}

	A := mat.NewDense(n, 3, nil)
	B := mat.NewVecDense(n, nil)
	for i, p := range points {
		A.Set(i, 0, 2*p.X)
		A.Set(i, 1, 2*p.Y)
		A.Set(i, 2, 1)
		B.SetVec(i, p.X*p.X+p.Y*p.Y)
	}

	var qr mat.QR
	qr.Factorize(A)
	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return nil, fmt.Errorf("circle fit: %w", err)
	}

	cx, cy := params.AtVec(0), params.AtVec(1)
	rr := params.AtVec(2) + cx*cx + cy*cy
	if rr <= 0 || math.IsNaN(rr) {
		return nil, fmt.Errorf("circle fit: degenerate point set")
	}
	return entity.NewCircle(geometry.NewPoint2D(cx, cy), math.Sqrt(rr)), nil
}
