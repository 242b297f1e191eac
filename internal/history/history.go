// Package history provides bounded undo and redo over scene commands.
// Commands carry the minimal diff needed to apply and revert
// themselves; they mutate scene clones handed to them by the stack, so
// published scenes are never touched in place.
package history

import (
	"draft-editor/internal/scene"
)

// DefaultDepth is the number of commands kept on the undo stack.
const DefaultDepth = 50

// Command is one undoable edit. Apply and Revert receive a scene clone
// to mutate. A failed Apply leaves the history untouched.
type Command interface {
	Name() string
	Apply(sc *scene.Scene) error
	Revert(sc *scene.Scene) error
}

// History is the undo/redo stack pair.
type History struct {
	depth int
	undo  []Command
	redo  []Command
}

// New creates a history bounded to depth commands. A depth of zero or
// less uses DefaultDepth.
func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{depth: depth}
}

// Execute applies the command to a clone of sc and pushes it onto the
// undo stack. The redo stack clears: an edit after undo forks the
// timeline. When the stack is full the oldest command falls off
// silently. A failed Apply returns the error and records nothing.
func (h *History) Execute(cmd Command, sc *scene.Scene) (*scene.Scene, error) {
	next := sc.Clone()
	if err := cmd.Apply(next); err != nil {
		return nil, err
	}

	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.depth {
		h.undo = h.undo[1:]
	}
	h.redo = nil
	return next, nil
}

// Undo reverts the most recent command against a clone of sc. It
// returns false when there is nothing to undo.
func (h *History) Undo(sc *scene.Scene) (*scene.Scene, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}

	cmd := h.undo[len(h.undo)-1]
	next := sc.Clone()
	if err := cmd.Revert(next); err != nil {
		return nil, false
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return next, true
}

// Redo re-applies the most recently undone command against a clone of
// sc. It returns false when there is nothing to redo.
func (h *History) Redo(sc *scene.Scene) (*scene.Scene, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}

	cmd := h.redo[len(h.redo)-1]
	next := sc.Clone()
	if err := cmd.Apply(next); err != nil {
		return nil, false
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return next, true
}

// CanUndo returns true if the undo stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if the redo stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoName returns the name of the command Undo would revert.
func (h *History) UndoName() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].Name()
}

// RedoName returns the name of the command Redo would re-apply.
func (h *History) RedoName() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].Name()
}

// Clear drops both stacks, e.g. after loading a different project.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
