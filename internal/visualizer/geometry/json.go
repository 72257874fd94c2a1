package geometry

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type selectionJSON struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	W      *float64 `json:"w,omitempty"`
	H      *float64 `json:"h,omitempty"`
	Points []Point  `json:"points,omitempty"`
}

// MarshalJSON writes {x,y,w,h} for rectangles, {points:[...]} for polygons
// and null for an empty selection.
func (s Selection) MarshalJSON() ([]byte, error) {
	switch {
	case s.rect != nil:
		return json.Marshal(*s.rect)
	case s.poly != nil:
		points := s.poly.Points
		if points == nil {
			points = []Point{}
		}
		return json.Marshal(struct {
			Points []Point `json:"points"`
		}{points})
	default:
		return []byte("null"), nil
	}
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Selection{}
		return nil
	}

	var raw selectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	hasRect := raw.X != nil || raw.Y != nil || raw.W != nil || raw.H != nil
	hasPoly := raw.Points != nil
	switch {
	case hasRect && hasPoly:
		return fmt.Errorf("selection has both rectangle and polygon fields")
	case hasPoly:
		*s = PolygonSelection(raw.Points)
	case hasRect:
		*s = RectSelection(Rect{X: deref(raw.X), Y: deref(raw.Y), W: deref(raw.W), H: deref(raw.H)})
	default:
		*s = Selection{}
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
