// Package snap finds the snap target nearest the cursor. Modes are
// ranked: an endpoint within tolerance always beats a midpoint, a
// midpoint beats a center, and so on, regardless of which candidate is
// closer. The search is re-run on every pointer move so the result
// always reflects the current cursor position.
package snap

import (
	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

// Mode is a snap candidate category.
type Mode string

const (
	ModeEndpoint      Mode = "endpoint"
	ModeMidpoint      Mode = "midpoint"
	ModeCenter        Mode = "center"
	ModeIntersection  Mode = "intersection"
	ModePerpendicular Mode = "perpendicular"
)

// DefaultTolerancePx is the snap capture radius in screen pixels,
// slightly wider than the entity pick radius.
const DefaultTolerancePx = 10.0

// DefaultPriority returns the mode ranking, strongest first.
func DefaultPriority() []Mode {
	return []Mode{ModeEndpoint, ModeMidpoint, ModeCenter, ModeIntersection, ModePerpendicular}
}

// Config controls which modes run and in what order.
type Config struct {
	Enabled     bool
	TolerancePx float64
	Modes       map[Mode]bool
	Priority    []Mode
}

// DefaultConfig enables every mode at the default tolerance.
func DefaultConfig() Config {
	modes := make(map[Mode]bool)
	for _, m := range DefaultPriority() {
		modes[m] = true
	}
	return Config{
		Enabled:     true,
		TolerancePx: DefaultTolerancePx,
		Modes:       modes,
		Priority:    DefaultPriority(),
	}
}

// Result is a resolved snap. EntityID names the snapped entity;
// intersection snaps also carry the second entity in OtherID.
type Result struct {
	Found    bool
	Mode     Mode
	Point    geometry.Point2D
	EntityID string
	OtherID  string
}

// Engine runs snap searches against a scene.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig replaces the configuration.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
}

// Find returns the best snap for the cursor, given in screen
// coordinates. ref is the drag base point used by perpendicular snap;
// pass nil outside a drag. No snap within tolerance returns a zero
// Result.
func (e *Engine) Find(sc *scene.Scene, vt transform.ViewTransform, cursor geometry.Point2D, ref *geometry.Point2D) Result {
	if !e.cfg.Enabled || sc == nil {
		return Result{}
	}

	tolPx := e.cfg.TolerancePx
	if tolPx <= 0 {
		tolPx = DefaultTolerancePx
	}
	world := vt.ScreenToWorld(cursor)
	tol := vt.ScreenToWorldDistance(tolPx)

	// Only entities near the cursor participate; everything else is
	// rejected on bounds alone.
	var nearby []entity.Entity
	for _, ent := range sc.Entities() {
		st := ent.EntityStyle()
		if !st.Visible || !sc.IsLayerVisible(st.Layer) {
			continue
		}
		if ent.Validate() != nil {
			continue
		}
		if ent.Bounds().Expand(tol).Contains(world) {
			nearby = append(nearby, ent)
		}
	}
	if len(nearby) == 0 {
		return Result{}
	}

	priority := e.cfg.Priority
	if len(priority) == 0 {
		priority = DefaultPriority()
	}
	for _, mode := range priority {
		if !e.cfg.Modes[mode] {
			continue
		}
		var r Result
		switch mode {
		case ModeEndpoint:
			r = nearestPoint(mode, endpointCandidates(nearby), world, tol)
		case ModeMidpoint:
			r = nearestPoint(mode, midpointCandidates(nearby), world, tol)
		case ModeCenter:
			r = nearestPoint(mode, centerCandidates(nearby), world, tol)
		case ModeIntersection:
			r = nearestIntersection(nearby, world, tol)
		case ModePerpendicular:
			if ref != nil {
				r = nearestPoint(mode, perpendicularCandidates(nearby, *ref), world, tol)
			}
		}
		if r.Found {
			return r
		}
	}
	return Result{}
}

// candidate is one potential snap point.
type candidate struct {
	point    geometry.Point2D
	entityID string
	otherID  string
}

// nearestPoint picks the closest candidate within tolerance.
func nearestPoint(mode Mode, candidates []candidate, world geometry.Point2D, tol float64) Result {
	best := Result{}
	bestDist := tol
	for _, c := range candidates {
		d := world.Distance(c.point)
		if d <= bestDist {
			bestDist = d
			best = Result{Found: true, Mode: mode, Point: c.point, EntityID: c.entityID, OtherID: c.otherID}
		}
	}
	return best
}
