// Package entity defines the drawable entity kinds managed by the
// editor: lines, circles, arcs, polylines and rectangles. Entities are
// value objects; edits clone an entity, mutate the clone and publish a
// new scene rather than changing an entity in place.
package entity

import (
	"fmt"

	"github.com/google/uuid"

	"draft-editor/pkg/geometry"
)

// Kind identifies an entity variant. The set of kinds is fixed;
// rendering per kind is looked up through the render registry.
type Kind string

const (
	KindLine      Kind = "line"
	KindCircle    Kind = "circle"
	KindArc       Kind = "arc"
	KindPolyline  Kind = "polyline"
	KindRectangle Kind = "rectangle"
)

// LineType selects the stroke dash pattern.
type LineType string

const (
	LineTypeSolid   LineType = "solid"
	LineTypeDashed  LineType = "dashed"
	LineTypeDotted  LineType = "dotted"
	LineTypeDashDot LineType = "dash-dot"
)

// Style holds the display attributes shared by all entity kinds.
// Selected is runtime state and is not persisted.
type Style struct {
	Layer      string   `json:"layer"`
	Color      string   `json:"color"`
	LineWeight float64  `json:"lineWeight"`
	LineType   LineType `json:"lineType"`
	Visible    bool     `json:"visible"`
	Selected   bool     `json:"-"`
}

// DefaultStyle returns the style applied to newly created entities.
func DefaultStyle() Style {
	return Style{
		Layer:      "default",
		Color:      "#FFFFFF",
		LineWeight: 1,
		LineType:   LineTypeSolid,
		Visible:    true,
	}
}

// Entity is the interface implemented by every drawable kind.
type Entity interface {
	// EntityID returns the stable identifier assigned at creation.
	EntityID() string

	// EntityKind returns the variant tag.
	EntityKind() Kind

	// EntityStyle returns the display attributes.
	EntityStyle() Style

	// SetStyle replaces the display attributes. Callers mutate clones,
	// never entities already published in a scene.
	SetStyle(Style)

	// Bounds returns the axis-aligned bounding box in world coordinates.
	Bounds() geometry.Rect

	// HitTest returns true if the point lies within tolerance of the
	// entity outline. Both arguments are in world coordinates.
	HitTest(p geometry.Point2D, tolerance float64) bool

	// OutlineSegments returns the outline as straight segments, with
	// circles and arcs linearized. Area selection tests run against
	// these instead of per-kind curve math.
	OutlineSegments() []geometry.Segment

	// Translate moves the entity by delta in world coordinates.
	Translate(delta geometry.Point2D)

	// Clone returns a deep copy sharing no mutable state.
	Clone() Entity

	// Validate reports non-finite or degenerate geometry. Invalid
	// entities are skipped by the renderer instead of drawn.
	Validate() error
}

// NewID returns a fresh entity identifier.
func NewID() string {
	return uuid.NewString()
}

// arcSegments is the linearization resolution for circle and arc
// outlines.
const arcSegments = 32

func validatePoint(what string, p geometry.Point2D) error {
	if !p.IsFinite() {
		return fmt.Errorf("%s has non-finite coordinates (%v, %v)", what, p.X, p.Y)
	}
	return nil
}
