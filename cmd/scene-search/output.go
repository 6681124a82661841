package main

import (
	"encoding/json"
	"io"

	"github.com/planet-tools/scene-search/pkg/planet"
)

// printJSON writes the refined scenes as a single JSON array. An empty
// result prints as an empty array, not null.
func printJSON(w io.Writer, scenes []*planet.Scene) error {
	if scenes == nil {
		scenes = []*planet.Scene{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(scenes)
}
