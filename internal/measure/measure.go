// Package measure implements the measure tool's math: point-to-point
// readouts and least-squares fits through picked points.
package measure

import (
	"fmt"
	"math"

	"draft-editor/pkg/geometry"
)

// Measurement is a straight measurement between two world points.
type Measurement struct {
	From geometry.Point2D
	To   geometry.Point2D
}

func Between(from, to geometry.Point2D) Measurement {
	return Measurement{From: from, To: to}
}

func (m Measurement) DX() float64     { return m.To.X - m.From.X }
func (m Measurement) DY() float64     { return m.To.Y - m.From.Y }
func (m Measurement) Length() float64 { return m.From.Distance(m.To) }

// Angle returns the direction from From to To in degrees, normalized
// to [0, 360).
func (m Measurement) Angle() float64 {
	deg := math.Atan2(m.DY(), m.DX()) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Label formats the readout shown next to the measure line.
func (m Measurement) Label() string {
	return fmt.Sprintf("%.2f (dx %.2f, dy %.2f, %.1f°)", m.Length(), m.DX(), m.DY(), m.Angle())
}
