package geometry

import "encoding/json"

// StrokeSet is the ordered output of one vectorization. It owns its points;
// accessors hand out copies so a set can be shared freely once built.
type StrokeSet struct {
	strokes []Polyline
}

// NewStrokeSet copies strokes into a new set.
func NewStrokeSet(strokes []Polyline) StrokeSet {
	out := make([]Polyline, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return StrokeSet{strokes: out}
}

// Len is the number of strokes.
func (s StrokeSet) Len() int { return len(s.strokes) }

// IsEmpty reports whether the set has no strokes. An empty set is a valid
// result: the image had nothing to draw.
func (s StrokeSet) IsEmpty() bool { return len(s.strokes) == 0 }

// At returns a copy of stroke i.
func (s StrokeSet) At(i int) Polyline { return s.strokes[i].Clone() }

// Strokes returns a deep copy of every stroke in draw order.
func (s StrokeSet) Strokes() []Polyline {
	out := make([]Polyline, len(s.strokes))
	for i, st := range s.strokes {
		out[i] = st.Clone()
	}
	return out
}

// PointCount is the total number of points across all strokes.
func (s StrokeSet) PointCount() int {
	n := 0
	for _, st := range s.strokes {
		n += len(st)
	}
	return n
}

// Length is the summed arc length of all strokes.
func (s StrokeSet) Length() float64 {
	total := 0.0
	for _, st := range s.strokes {
		total += st.Length()
	}
	return total
}

// Bounds covers every stroke. The zero Rect is returned for an empty set.
func (s StrokeSet) Bounds() Rect {
	if len(s.strokes) == 0 {
		return Rect{}
	}
	r := s.strokes[0].Bounds()
	for _, st := range s.strokes[1:] {
		r = r.Union(st.Bounds())
	}
	return r
}

// Equal reports whether both sets hold the same points in the same order.
func (s StrokeSet) Equal(o StrokeSet) bool {
	if len(s.strokes) != len(o.strokes) {
		return false
	}
	for i := range s.strokes {
		a, b := s.strokes[i], o.strokes[i]
		if len(a) != len(b) {
			return false
		}
		for k := range a {
			if a[k] != b[k] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the set as {"strokes": [[[x,y],...],...]}.
func (s StrokeSet) MarshalJSON() ([]byte, error) {
	doc := struct {
		Strokes [][][2]float64 `json:"strokes"`
	}{Strokes: make([][][2]float64, len(s.strokes))}

	for i, st := range s.strokes {
		pts := make([][2]float64, len(st))
		for k, p := range st {
			pts[k] = [2]float64{p.X, p.Y}
		}
		doc.Strokes[i] = pts
	}
	return json.Marshal(doc)
}

// UnmarshalJSON accepts the MarshalJSON layout.
func (s *StrokeSet) UnmarshalJSON(data []byte) error {
	var doc struct {
		Strokes [][][2]float64 `json:"strokes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	strokes := make([]Polyline, len(doc.Strokes))
	for i, st := range doc.Strokes {
		pl := make(Polyline, len(st))
		for k, p := range st {
			pl[k] = Point{X: p[0], Y: p[1]}
		}
		strokes[i] = pl
	}
	s.strokes = strokes
	return nil
}
