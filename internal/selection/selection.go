// Package selection tracks which entities are selected. The set keeps
// insertion order so operations over the selection behave predictably,
// and it never holds entity pointers, only IDs, so stale references
// cannot outlive a scene swap.
package selection

import (
	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/pkg/geometry"
)

// Manager is the selection set.
type Manager struct {
	ids    []string
	member map[string]bool
}

// NewManager creates an empty selection.
func NewManager() *Manager {
	return &Manager{member: make(map[string]bool)}
}

// Selected returns the selected IDs in the order they were added.
func (m *Manager) Selected() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

// Contains returns true if the ID is selected.
func (m *Manager) Contains(id string) bool {
	return m.member[id]
}

// Count returns the number of selected entities.
func (m *Manager) Count() int {
	return len(m.ids)
}

// Select adds an ID. It returns true if the selection changed.
func (m *Manager) Select(id string) bool {
	if m.member[id] {
		return false
	}
	m.member[id] = true
	m.ids = append(m.ids, id)
	return true
}

// Deselect removes an ID. It returns true if the selection changed.
func (m *Manager) Deselect(id string) bool {
	if !m.member[id] {
		return false
	}
	delete(m.member, id)
	m.ids = removeString(m.ids, id)
	return true
}

// Toggle flips an ID's membership.
func (m *Manager) Toggle(id string) {
	if m.member[id] {
		m.Deselect(id)
	} else {
		m.Select(id)
	}
}

// Clear empties the selection. It returns true if anything was
// selected.
func (m *Manager) Clear() bool {
	if len(m.ids) == 0 {
		return false
	}
	m.ids = nil
	m.member = make(map[string]bool)
	return true
}

// Replace swaps the whole selection for the given IDs.
func (m *Manager) Replace(ids []string) {
	m.Clear()
	for _, id := range ids {
		m.Select(id)
	}
}

// AddAll selects every given ID, keeping what was already selected.
func (m *Manager) AddAll(ids []string) {
	for _, id := range ids {
		m.Select(id)
	}
}

// Prune drops IDs that no longer exist in the scene, returning true if
// any were dropped.
func (m *Manager) Prune(sc *scene.Scene) bool {
	changed := false
	for _, id := range m.Selected() {
		if _, ok := sc.Get(id); !ok {
			m.Deselect(id)
			changed = true
		}
	}
	return changed
}

// Apply stamps the selection onto the entities of the given scene.
// Call it on a scene clone before publishing, never on a published
// scene.
func (m *Manager) Apply(sc *scene.Scene) {
	for _, e := range sc.Entities() {
		st := e.EntityStyle()
		want := m.member[e.EntityID()]
		if st.Selected != want {
			st.Selected = want
			e.SetStyle(st)
		}
	}
}

func removeString(slice []string, s string) []string {
	for i, v := range slice {
		if v == s {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

// SelectableIDs filters entities down to the IDs that may be selected:
// entities on locked layers are refused.
func SelectableIDs(sc *scene.Scene, entities []entity.Entity) []string {
	var ids []string
	for _, e := range entities {
		if sc.IsLayerLocked(e.EntityStyle().Layer) {
			continue
		}
		ids = append(ids, e.EntityID())
	}
	return ids
}

// MarqueeCrossing reports whether a marquee drag is a crossing pick.
// Dragging left to right in screen space is a window pick; right to
// left is a crossing pick.
func MarqueeCrossing(startScreen, currentScreen geometry.Point2D) bool {
	return currentScreen.X < startScreen.X
}
