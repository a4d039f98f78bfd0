// Package export writes StrokeSets in interchange formats.
package export

import (
	"encoding/json"
	"io"

	"sketchvec/internal/geometry"
)

// WriteJSON writes {"strokes":[[[x,y],...],...]} followed by a newline.
func WriteJSON(w io.Writer, set geometry.StrokeSet) error {
	return json.NewEncoder(w).Encode(set)
}

// ReadJSON parses the WriteJSON layout.
func ReadJSON(r io.Reader) (geometry.StrokeSet, error) {
	var set geometry.StrokeSet
	err := json.NewDecoder(r).Decode(&set)
	return set, err
}
