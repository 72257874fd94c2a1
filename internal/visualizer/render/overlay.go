package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"shade-store/internal/visualizer/geometry"
)

// DefaultTileSize is the fabric swatch size in pixels at zoom 1.
const DefaultTileSize = 120

// Overlay is everything needed to draw a shade over the room photo.
type Overlay struct {
	ContainerWidth  float64
	ContainerHeight float64
	Box             geometry.ImageBox
	Selection       geometry.Selection
	// FabricImage is the swatch URL. Empty means a flat Color fill.
	FabricImage string
	Color       string
	Zoom        float64
	TileSize    float64
	Opacity     float64
}

// ============================================================
// Renderer
// ============================================================

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the SVG layer placed on top of the photo container.
func (r *Renderer) Render(o Overlay) (string, error) {
	if o.ContainerWidth <= 0 || o.ContainerHeight <= 0 {
		return "", fmt.Errorf("container size is not set")
	}
	if o.Selection.IsEmpty() {
		return "", fmt.Errorf("selection is empty")
	}
	if o.Box.IsZero() {
		return "", fmt.Errorf("image box is not set")
	}

	fill, defs := r.fill(o)
	shape, err := r.shape(o, fill)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(o.ContainerWidth), formatFloat(o.ContainerHeight),
		formatFloat(o.ContainerWidth), formatFloat(o.ContainerHeight)))
	builder.WriteString("\n")

	if defs != "" {
		builder.WriteString("  <defs>\n    ")
		builder.WriteString(defs)
		builder.WriteString("\n  </defs>\n")
	}

	builder.WriteString("  ")
	builder.WriteString(shape)
	builder.WriteString("\n")

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Fill & shape
// ============================================================

func (r *Renderer) fill(o Overlay) (string, string) {
	color := o.Color
	if color == "" {
		color = "#d9d4c7"
	}
	if o.FabricImage == "" {
		return html.EscapeString(color), ""
	}

	transform, ok := geometry.PatternFor(o.Box, o.Selection, o.Zoom)
	if !ok {
		return html.EscapeString(color), ""
	}

	tile := o.TileSize
	if tile <= 0 {
		tile = DefaultTileSize
	}

	defs := fmt.Sprintf(`<pattern id="fabric" patternUnits="userSpaceOnUse" width="%s" height="%s" patternTransform="%s"><image href="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid slice"/></pattern>`,
		formatFloat(tile), formatFloat(tile), transform.String(),
		html.EscapeString(o.FabricImage), formatFloat(tile), formatFloat(tile))

	return "url(#fabric)", defs
}

func (r *Renderer) shape(o Overlay, fill string) (string, error) {
	opacity := o.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 0.92
	}
	style := fmt.Sprintf(`fill="%s" fill-opacity="%s" stroke="#ffffff" stroke-width="2"`, fill, formatFloat(opacity))

	if rect, ok := o.Selection.Rect(); ok {
		// SVG rects cannot have negative extents
		px := o.Box.RectToPixel(rect).Normalized()
		return fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" %s/>`,
			formatFloat(px.X), formatFloat(px.Y), formatFloat(px.W), formatFloat(px.H), style), nil
	}

	poly, _ := o.Selection.Polygon()
	if len(poly.Points) < 2 {
		return "", fmt.Errorf("polygon needs at least 2 points, got %d", len(poly.Points))
	}

	pixels := o.Box.PointsToPixel(poly.Points)
	parts := make([]string, 0, len(pixels))
	for _, p := range pixels {
		parts = append(parts, formatFloat(p.X)+","+formatFloat(p.Y))
	}
	// <polygon> joins the last point to the first on its own
	return fmt.Sprintf(`<polygon points="%s" %s/>`, strings.Join(parts, " "), style), nil
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
