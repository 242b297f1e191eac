// Package draw implements the entity creation tools. Each tool turns
// a short sequence of picked world points into one new entity and
// keeps a rubber-band preview alive between picks.
package draw

import (
	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

// Tool is one creation tool. The editor feeds it snapped world-space
// clicks and cursor moves and renders whatever Preview returns on the
// overlay. Click returns the finished entity once enough points are
// in; tol is the pick tolerance in world units, used to refuse
// degenerate picks such as a zero-length line.
type Tool interface {
	Name() string
	// Pending reports whether a shape is under construction.
	Pending() bool
	Click(p geometry.Point2D, tol float64) (entity.Entity, bool)
	Move(p geometry.Point2D)
	// Preview returns the in-progress shape, or nil when idle.
	Preview() entity.Entity
	// Finish completes the shape early where that makes sense
	// (polyline on Enter or double-click). Other tools just reset.
	Finish() (entity.Entity, bool)
	Cancel()
}
