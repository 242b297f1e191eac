package scene

import "draft-editor/internal/entity"

// DefaultLayerName is the layer assigned to entities created without an
// explicit layer.
const DefaultLayerName = "default"

// Layer groups entities for visibility and locking. Entities reference
// layers by name through their style; an entity whose layer is missing
// from the table behaves as if its layer were visible and unlocked.
type Layer struct {
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Visible  bool            `json:"visible"`
	Locked   bool            `json:"locked"`
	LineType entity.LineType `json:"lineType"`
}

// DefaultLayer returns the layer every new scene starts with.
func DefaultLayer() *Layer {
	return &Layer{
		Name:     DefaultLayerName,
		Color:    "#FFFFFF",
		Visible:  true,
		LineType: entity.LineTypeSolid,
	}
}

// Layers returns the layer table in creation order. The returned slice
// is the scene's own storage; callers must not modify it.
func (s *Scene) Layers() []*Layer {
	return s.layers
}

// Layer returns the layer with the given name.
func (s *Scene) Layer(name string) (*Layer, bool) {
	for _, l := range s.layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// AddLayer appends a layer. It returns false if the name is taken.
func (s *Scene) AddLayer(l *Layer) bool {
	if _, exists := s.Layer(l.Name); exists {
		return false
	}
	s.layers = append(s.layers, l)
	return true
}

// RemoveLayer deletes the named layer. The default layer cannot be
// removed. Entities on the removed layer are reassigned to the default
// layer.
func (s *Scene) RemoveLayer(name string) bool {
	if name == DefaultLayerName {
		return false
	}
	for i, l := range s.layers {
		if l.Name == name {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			for _, e := range s.entities {
				if st := e.EntityStyle(); st.Layer == name {
					st.Layer = DefaultLayerName
					e.SetStyle(st)
				}
			}
			return true
		}
	}
	return false
}

// IsLayerVisible returns true unless the named layer exists and is
// hidden.
func (s *Scene) IsLayerVisible(name string) bool {
	if l, ok := s.Layer(name); ok {
		return l.Visible
	}
	return true
}

// IsLayerLocked returns true only if the named layer exists and is
// locked.
func (s *Scene) IsLayerLocked(name string) bool {
	if l, ok := s.Layer(name); ok {
		return l.Locked
	}
	return false
}
