package planet

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Scene represents one Data API feature: a catalog entry describing an
// available image. Beyond the fields the search pipeline needs, a scene
// carries provider-specific members (_links, _permissions, ...) that must
// survive a search round trip unmodified, so they are captured as foreign
// members.
type Scene struct {
	Type       string          `json:"type,omitempty"`
	ID         string          `json:"id"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`

	// AdditionalFields holds foreign members not modeled above.
	AdditionalFields map[string]any `json:"-"`
}

var knownSceneFields = map[string]bool{
	"type": true, "id": true, "geometry": true, "properties": true,
}

// Acquired parses the acquisition timestamp from the scene properties.
func (s *Scene) Acquired() (time.Time, error) {
	raw, ok := s.Properties["acquired"].(string)
	if !ok || raw == "" {
		return time.Time{}, ErrMissingAcquired
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("planet: parse acquired %q: %w", raw, err)
	}
	return t, nil
}

// UnmarshalJSON implements custom unmarshaling to capture foreign members.
func (s *Scene) UnmarshalJSON(data []byte) error {
	type sceneAlias Scene
	if err := json.Unmarshal(data, (*sceneAlias)(s)); err != nil {
		return err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for name := range knownSceneFields {
		delete(members, name)
	}

	s.AdditionalFields = make(map[string]any, len(members))
	for name, raw := range members {
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		s.AdditionalFields[name] = value
	}
	return nil
}

// MarshalJSON implements custom marshaling to include foreign members.
func (s Scene) MarshalJSON() ([]byte, error) {
	type sceneAlias Scene
	data, err := json.Marshal(sceneAlias(s))
	if err != nil || len(s.AdditionalFields) == 0 {
		return data, err
	}

	merged := make(map[string]json.RawMessage, len(knownSceneFields)+len(s.AdditionalFields))
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for name, value := range s.AdditionalFields {
		if knownSceneFields[name] {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[name] = encoded
	}
	return json.Marshal(merged)
}
