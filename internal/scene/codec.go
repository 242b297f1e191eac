package scene

import (
	"encoding/json"
	"fmt"

	"draft-editor/internal/entity"
)

// MarshalEntity encodes an entity with an inline "kind" tag so the
// variant survives the round trip.
func MarshalEntity(e entity.Entity) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding %s entity: %w", e.EntityKind(), err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("encoding %s entity: %w", e.EntityKind(), err)
	}
	kind, _ := json.Marshal(e.EntityKind())
	fields["kind"] = kind
	return json.Marshal(fields)
}

// UnmarshalEntity decodes an entity from its tagged form.
func UnmarshalEntity(data []byte) (entity.Entity, error) {
	var probe struct {
		Kind entity.Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding entity tag: %w", err)
	}

	var e entity.Entity
	switch probe.Kind {
	case entity.KindLine:
		e = &entity.Line{}
	case entity.KindCircle:
		e = &entity.Circle{}
	case entity.KindArc:
		e = &entity.Arc{}
	case entity.KindPolyline:
		e = &entity.Polyline{}
	case entity.KindRectangle:
		e = &entity.Rectangle{}
	default:
		return nil, fmt.Errorf("unknown entity kind %q", probe.Kind)
	}

	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("decoding %s entity: %w", probe.Kind, err)
	}
	return e, nil
}

type sceneJSON struct {
	Layers   []*Layer          `json:"layers"`
	Entities []json.RawMessage `json:"entities"`
}

// MarshalJSON encodes the scene with entities in draw order.
func (s *Scene) MarshalJSON() ([]byte, error) {
	out := sceneJSON{Layers: s.layers}
	for _, e := range s.entities {
		raw, err := MarshalEntity(e)
		if err != nil {
			return nil, err
		}
		out.Entities = append(out.Entities, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a scene, preserving entity draw order. A scene
// without layers gains the default layer.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var in sceneJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	s.entities = nil
	s.index = make(map[string]int)
	s.layers = in.Layers
	if len(s.layers) == 0 {
		s.layers = []*Layer{DefaultLayer()}
	}
	for _, raw := range in.Entities {
		e, err := UnmarshalEntity(raw)
		if err != nil {
			return err
		}
		s.Add(e)
	}
	return nil
}
