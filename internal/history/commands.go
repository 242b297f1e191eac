package history

import (
	"fmt"

	"draft-editor/internal/entity"
	"draft-editor/internal/scene"
	"draft-editor/pkg/geometry"
)

// AddEntity adds one entity to the scene.
type AddEntity struct {
	e entity.Entity
}

// NewAddEntity captures the entity to add. The entity is cloned so
// later edits to the original cannot corrupt the diff.
func NewAddEntity(e entity.Entity) *AddEntity {
	return &AddEntity{e: e.Clone()}
}

func (c *AddEntity) Name() string {
	return fmt.Sprintf("add %s", c.e.EntityKind())
}

func (c *AddEntity) Apply(sc *scene.Scene) error {
	if _, exists := sc.Get(c.e.EntityID()); exists {
		return fmt.Errorf("add %s: id %s already in scene", c.e.EntityKind(), c.e.EntityID())
	}
	sc.Add(c.e.Clone())
	return nil
}

func (c *AddEntity) Revert(sc *scene.Scene) error {
	if !sc.Remove(c.e.EntityID()) {
		return fmt.Errorf("add %s: id %s missing on revert", c.e.EntityKind(), c.e.EntityID())
	}
	return nil
}

type removedEntity struct {
	e     entity.Entity
	index int
}

// DeleteEntities removes a set of entities, restoring their draw order
// positions on revert.
type DeleteEntities struct {
	removed []removedEntity
}

// NewDeleteEntities captures the named entities from the current
// scene. Unknown IDs are skipped; deleting nothing is legal and
// yields a command that applies as a no-op.
func NewDeleteEntities(sc *scene.Scene, ids []string) *DeleteEntities {
	var removed []removedEntity
	for _, id := range ids {
		e, ok := sc.Get(id)
		if !ok {
			continue
		}
		index, _ := sc.IndexOf(id)
		removed = append(removed, removedEntity{e: e.Clone(), index: index})
	}
	return &DeleteEntities{removed: removed}
}

func (c *DeleteEntities) Name() string {
	if len(c.removed) == 1 {
		return fmt.Sprintf("delete %s", c.removed[0].e.EntityKind())
	}
	return fmt.Sprintf("delete %d entities", len(c.removed))
}

// Empty returns true if the command captured nothing.
func (c *DeleteEntities) Empty() bool {
	return len(c.removed) == 0
}

func (c *DeleteEntities) Apply(sc *scene.Scene) error {
	for _, r := range c.removed {
		if !sc.Remove(r.e.EntityID()) {
			return fmt.Errorf("delete: id %s not in scene", r.e.EntityID())
		}
	}
	return nil
}

func (c *DeleteEntities) Revert(sc *scene.Scene) error {
	// Re-insert in ascending index order so each stored position is
	// valid by the time it is used.
	for i := 0; i < len(c.removed); i++ {
		lowest := -1
		for j, r := range c.removed {
			if _, exists := sc.Get(r.e.EntityID()); exists {
				continue
			}
			if lowest == -1 || r.index < c.removed[lowest].index {
				lowest = j
			}
		}
		if lowest == -1 {
			return fmt.Errorf("delete: entities already present on revert")
		}
		r := c.removed[lowest]
		sc.InsertAt(r.index, r.e.Clone())
	}
	return nil
}

// ReplaceEntities swaps entities for rewritten versions with the same
// IDs. It is the command behind grip drags, vertex insertion, topology
// conversion and property edits.
type ReplaceEntities struct {
	before []entity.Entity
	after  []entity.Entity
	name   string
}

// NewReplaceEntities captures before and after states. Both slices are
// cloned and must pair up by entity ID.
func NewReplaceEntities(name string, before, after []entity.Entity) *ReplaceEntities {
	c := &ReplaceEntities{name: name}
	for _, e := range before {
		c.before = append(c.before, e.Clone())
	}
	for _, e := range after {
		c.after = append(c.after, e.Clone())
	}
	return c
}

func (c *ReplaceEntities) Name() string {
	return c.name
}

func (c *ReplaceEntities) Apply(sc *scene.Scene) error {
	return replaceAll(sc, c.after)
}

func (c *ReplaceEntities) Revert(sc *scene.Scene) error {
	return replaceAll(sc, c.before)
}

func replaceAll(sc *scene.Scene, entities []entity.Entity) error {
	for _, e := range entities {
		if !sc.Replace(e.Clone()) {
			return fmt.Errorf("replace: id %s not in scene", e.EntityID())
		}
	}
	return nil
}

// TranslateEntities moves whole entities by a delta. Arrow-key nudges
// compile to this.
type TranslateEntities struct {
	ids   []string
	delta geometry.Point2D
}

// NewTranslateEntities captures the IDs to move and the world-space
// delta.
func NewTranslateEntities(ids []string, delta geometry.Point2D) *TranslateEntities {
	c := &TranslateEntities{delta: delta}
	c.ids = append(c.ids, ids...)
	return c
}

func (c *TranslateEntities) Name() string {
	if len(c.ids) == 1 {
		return "move entity"
	}
	return fmt.Sprintf("move %d entities", len(c.ids))
}

func (c *TranslateEntities) Apply(sc *scene.Scene) error {
	return translateAll(sc, c.ids, c.delta)
}

func (c *TranslateEntities) Revert(sc *scene.Scene) error {
	return translateAll(sc, c.ids, c.delta.Scale(-1))
}

func translateAll(sc *scene.Scene, ids []string, delta geometry.Point2D) error {
	for _, id := range ids {
		e, ok := sc.Get(id)
		if !ok {
			return fmt.Errorf("move: id %s not in scene", id)
		}
		e.Translate(delta)
	}
	return nil
}
