package editor

import (
	"draft-editor/internal/entity"
	"draft-editor/internal/grips"
	"draft-editor/internal/history"
	"draft-editor/internal/scene"
	"draft-editor/internal/transform"
	"draft-editor/pkg/geometry"
)

// AddEntity appends one entity to the scene as an undoable command.
func (e *Editor) AddEntity(ent entity.Entity) bool {
	if ent == nil {
		return false
	}
	if err := ent.Validate(); err != nil {
		e.log.Warn("refusing invalid entity", "kind", ent.EntityKind(), "error", err)
		return false
	}
	return e.commit(history.NewAddEntity(ent))
}

// addStamped stamps newly drawn entities with the active layer before
// adding them.
func (e *Editor) addStamped(ent entity.Entity) bool {
	if e.activeLayer != "" {
		st := ent.EntityStyle()
		st.Layer = e.activeLayer
		ent.SetStyle(st)
	}
	return e.AddEntity(ent)
}

// DeleteSelection removes the selected entities. Nothing selected is
// a no-op.
func (e *Editor) DeleteSelection() bool {
	cmd := history.NewDeleteEntities(e.scene, e.sel.Selected())
	if cmd.Empty() {
		return false
	}
	return e.commit(cmd)
}

// NudgeSelection moves the selection by a world-space delta. Entities
// on locked layers stay put.
func (e *Editor) NudgeSelection(dx, dy float64) bool {
	var ids []string
	for _, id := range e.sel.Selected() {
		ent, ok := e.scene.Get(id)
		if !ok || e.scene.IsLayerLocked(ent.EntityStyle().Layer) {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return false
	}
	return e.commit(history.NewTranslateEntities(ids, geometry.NewPoint2D(dx, dy)))
}

// SimplifySelection reduces the vertex count of selected polylines
// with Douglas-Peucker at the given world tolerance. Polylines that
// would fall below the minimum vertex count are left alone.
func (e *Editor) SimplifySelection(tolerance float64) bool {
	var before, after []entity.Entity
	for _, id := range e.sel.Selected() {
		ent, ok := e.scene.Get(id)
		if !ok {
			continue
		}
		pl, isPolyline := ent.(*entity.Polyline)
		if !isPolyline {
			continue
		}
		reduced := geometry.SimplifyPath(pl.Vertices, tolerance)
		minVertices := 2
		if pl.Closed {
			minVertices = 3
		}
		if len(reduced) >= len(pl.Vertices) || len(reduced) < minVertices {
			continue
		}
		cp := pl.Clone().(*entity.Polyline)
		cp.Vertices = reduced
		before = append(before, pl)
		after = append(after, cp)
	}
	if len(before) == 0 {
		return false
	}
	return e.commit(history.NewReplaceEntities("simplify", before, after))
}

// BreakAtEdge re-opens a closed polyline at the given segment as an
// undoable topology command.
func (e *Editor) BreakAtEdge(entityID string, segmentIndex int) bool {
	ent, ok := e.scene.Get(entityID)
	if !ok {
		return false
	}
	pl, isPolyline := ent.(*entity.Polyline)
	if !isPolyline {
		return false
	}
	opened, err := grips.BreakAtEdge(pl, segmentIndex)
	if err != nil {
		e.log.Debug("break refused", "error", err)
		return false
	}
	return e.commit(history.NewReplaceEntities("break polyline",
		[]entity.Entity{pl}, []entity.Entity{opened}))
}

// RestyleSelection rewrites the styles of the selected entities
// through one undoable command. mutate receives each current style
// and returns the replacement.
func (e *Editor) RestyleSelection(name string, mutate func(entity.Style) entity.Style) bool {
	var before, after []entity.Entity
	for _, id := range e.sel.Selected() {
		ent, ok := e.scene.Get(id)
		if !ok {
			continue
		}
		cp := ent.Clone()
		st := mutate(cp.EntityStyle())
		st.Selected = false
		cp.SetStyle(st)
		before = append(before, ent)
		after = append(after, cp)
	}
	if len(before) == 0 {
		return false
	}
	return e.commit(history.NewReplaceEntities(name, before, after))
}

// ActiveLayer is the layer stamped onto newly drawn entities.
func (e *Editor) ActiveLayer() string {
	if e.activeLayer == "" {
		return scene.DefaultLayerName
	}
	return e.activeLayer
}

// SetActiveLayer changes the drawing layer for new entities.
func (e *Editor) SetActiveLayer(name string) {
	e.activeLayer = name
}

// AddLayer registers a new layer. Layer list edits are workspace
// state, not drawing edits, so they bypass the undo history.
func (e *Editor) AddLayer(l *scene.Layer) bool {
	sc := e.scene.Clone()
	if !sc.AddLayer(l) {
		return false
	}
	e.scene = sc
	e.fireScene()
	return true
}

// RemoveLayer deletes a layer, moving its entities to the default
// layer. The default layer itself cannot be removed.
func (e *Editor) RemoveLayer(name string) bool {
	sc := e.scene.Clone()
	if !sc.RemoveLayer(name) {
		return false
	}
	if e.activeLayer == name {
		e.activeLayer = ""
	}
	e.scene = sc
	e.fireScene()
	e.fireOverlay()
	return true
}

// SetLayerVisible toggles a layer's visibility. Hidden layers do not
// render and do not hit-test.
func (e *Editor) SetLayerVisible(name string, visible bool) bool {
	return e.updateLayer(name, func(l *scene.Layer) {
		l.Visible = visible
	})
}

// SetLayerLocked toggles a layer's lock. Locking also drops the
// layer's entities from the current selection.
func (e *Editor) SetLayerLocked(name string, locked bool) bool {
	if !e.updateLayer(name, func(l *scene.Layer) {
		l.Locked = locked
	}) {
		return false
	}
	if locked {
		changed := false
		for _, id := range e.sel.Selected() {
			if ent, ok := e.scene.Get(id); ok && ent.EntityStyle().Layer == name {
				e.sel.Deselect(id)
				changed = true
			}
		}
		if changed {
			e.publishSelection()
		}
	}
	return true
}

// UpdateLayerStyle restyles a layer. Entities inheriting from the
// layer pick up the change on the next paint.
func (e *Editor) UpdateLayerStyle(name, color string, lt entity.LineType) bool {
	return e.updateLayer(name, func(l *scene.Layer) {
		l.Color = color
		l.LineType = lt
	})
}

func (e *Editor) updateLayer(name string, mutate func(*scene.Layer)) bool {
	sc := e.scene.Clone()
	l, ok := sc.Layer(name)
	if !ok {
		return false
	}
	mutate(l)
	e.scene = sc
	e.fireScene()
	e.fireOverlay()
	return true
}

// ZoomIn zooms one step about the viewport center.
func (e *Editor) ZoomIn() {
	e.setView(e.view.ZoomIn(e.viewport.Center()))
}

// ZoomOut zooms one step out about the viewport center.
func (e *Editor) ZoomOut() {
	e.setView(e.view.ZoomOut(e.viewport.Center()))
}

// ZoomFit fits the whole scene into the viewport.
func (e *Editor) ZoomFit() {
	bounds, ok := e.scene.Bounds()
	if !ok {
		e.ZoomReset()
		return
	}
	e.setView(e.view.FitToView(bounds, e.viewport))
}

// ZoomReset returns to 1:1 scale with the origin centered.
func (e *Editor) ZoomReset() {
	e.setView(transform.Centered(e.viewport))
}
