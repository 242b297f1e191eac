// Package app provides application lifecycle state, events, theming
// and the development-time binary watcher.
package app

import (
	"sync"

	"draft-editor/internal/project"
)

// EventType identifies application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State tracks the open project and its dirty flag. The drawing
// itself lives in the editor; State only owns lifecycle bookkeeping.
type State struct {
	mu sync.RWMutex

	ProjectPath string
	ProjectName string
	Modified    bool

	listeners map[EventType][]EventListener
}

// NewState creates application state with no project open.
func NewState() *State {
	return &State{
		ProjectName: "untitled",
		listeners:   make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified flips the dirty flag and emits an event on changes.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.Modified != modified
	s.Modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// IsModified reports the dirty flag.
func (s *State) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Modified
}

// Path returns the open project path, empty for unsaved projects.
func (s *State) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ProjectPath
}

// Name returns the project display name.
func (s *State) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ProjectName
}

// NewProject resets state to a fresh unsaved project and returns it.
func (s *State) NewProject(name string) *project.File {
	if name == "" {
		name = "untitled"
	}
	proj := project.New(name)

	s.mu.Lock()
	s.ProjectPath = ""
	s.ProjectName = name
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, proj)
	return proj
}

// OpenProject loads a project file and adopts it as current.
func (s *State) OpenProject(path string) (*project.File, error) {
	proj, err := project.Load(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.ProjectName = proj.Name
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, proj)
	return proj, nil
}

// SaveProject writes the project to path and clears the dirty flag.
func (s *State) SaveProject(path string, proj *project.File) error {
	path = project.WithExt(path)
	proj.Name = project.NameFromPath(path)

	if err := proj.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.ProjectName = proj.Name
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}
