// Package scene holds the document model: an ordered entity collection
// plus its layer table. The editor never mutates a published scene;
// edits clone the scene, change the clone and hand the new scene back
// to the owner through a callback.
package scene

import (
	"draft-editor/internal/entity"
	"draft-editor/pkg/geometry"
)

// Scene is an ordered collection of entities. Insertion order is draw
// order: the most recently added entity draws on top and wins ties
// during hit testing.
type Scene struct {
	entities []entity.Entity
	index    map[string]int
	layers   []*Layer
}

// New creates an empty scene with a single default layer.
func New() *Scene {
	return &Scene{
		index:  make(map[string]int),
		layers: []*Layer{DefaultLayer()},
	}
}

// Add appends an entity, making it the topmost.
func (s *Scene) Add(e entity.Entity) {
	s.index[e.EntityID()] = len(s.entities)
	s.entities = append(s.entities, e)
}

// InsertAt inserts an entity at draw order position i, clamped to the
// valid range. Undoing a delete uses this to restore the original
// stacking.
func (s *Scene) InsertAt(i int, e entity.Entity) {
	if i < 0 {
		i = 0
	}
	if i > len(s.entities) {
		i = len(s.entities)
	}
	s.entities = append(s.entities, nil)
	copy(s.entities[i+1:], s.entities[i:])
	s.entities[i] = e
	for j := i; j < len(s.entities); j++ {
		s.index[s.entities[j].EntityID()] = j
	}
}

// IndexOf returns the draw order position of an entity.
func (s *Scene) IndexOf(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Remove deletes the entity with the given ID. It returns false if the
// ID is unknown.
func (s *Scene) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.entities = append(s.entities[:i], s.entities[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.entities); j++ {
		s.index[s.entities[j].EntityID()] = j
	}
	return true
}

// Replace swaps the entity with the same ID, keeping its draw order
// position. It returns false if the ID is unknown.
func (s *Scene) Replace(e entity.Entity) bool {
	i, ok := s.index[e.EntityID()]
	if !ok {
		return false
	}
	s.entities[i] = e
	return true
}

// Get returns the entity with the given ID.
func (s *Scene) Get(id string) (entity.Entity, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.entities[i], true
}

// Entities returns the entities in draw order, bottom to top. The
// returned slice is the scene's own storage; callers must not modify it.
func (s *Scene) Entities() []entity.Entity {
	return s.entities
}

// Len returns the number of entities.
func (s *Scene) Len() int {
	return len(s.entities)
}

// Clone returns a deep copy: every entity and layer is cloned, so the
// copy can be mutated without touching the original.
func (s *Scene) Clone() *Scene {
	c := &Scene{
		entities: make([]entity.Entity, len(s.entities)),
		index:    make(map[string]int, len(s.index)),
		layers:   make([]*Layer, len(s.layers)),
	}
	for i, e := range s.entities {
		c.entities[i] = e.Clone()
		c.index[e.EntityID()] = i
	}
	for i, l := range s.layers {
		lc := *l
		c.layers[i] = &lc
	}
	return c
}

// Bounds returns the union of the bounding boxes of all valid entities.
// An empty or fully invalid scene returns the zero rect.
func (s *Scene) Bounds() (geometry.Rect, bool) {
	var bounds geometry.Rect
	found := false
	for _, e := range s.entities {
		if e.Validate() != nil {
			continue
		}
		if !found {
			bounds = e.Bounds()
			found = true
		} else {
			bounds = bounds.Union(e.Bounds())
		}
	}
	return bounds, found
}
