package geometry

import "fmt"

const (
	MinZoom     = 0.25
	MaxZoom     = 4.0
	DefaultZoom = 1.0
)

// PatternTransform places a tiled fabric texture in container pixels. The
// tile origin is pinned to the selection's first point so the texture moves
// with the selection.
type PatternTransform struct {
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Scale      float64 `json:"scale"`
}

// ClampZoom keeps a user zoom inside [MinZoom, MaxZoom]. Zero means default.
func ClampZoom(zoom float64) float64 {
	if zoom <= 0 {
		return DefaultZoom
	}
	return min(max(zoom, MinZoom), MaxZoom)
}

// PatternFor computes the fill transform for a selection drawn in box.
func PatternFor(box ImageBox, sel Selection, zoom float64) (PatternTransform, bool) {
	anchor, ok := sel.Anchor()
	if !ok || box.IsZero() {
		return PatternTransform{}, false
	}
	origin := box.ToPixel(anchor)
	return PatternTransform{
		TranslateX: origin.X,
		TranslateY: origin.Y,
		Scale:      ClampZoom(zoom),
	}, true
}

// String renders the SVG patternTransform attribute.
func (t PatternTransform) String() string {
	return fmt.Sprintf("translate(%s %s) scale(%s)",
		formatFloat(t.TranslateX), formatFloat(t.TranslateY), formatFloat(t.Scale))
}
