package render

import (
	"strings"
	"testing"

	"shade-store/internal/visualizer/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseOverlay(sel geometry.Selection) Overlay {
	return Overlay{
		ContainerWidth:  1000,
		ContainerHeight: 500,
		Box:             geometry.ContainBox(1000, 500, 2),
		Selection:       sel,
	}
}

func TestRender_NegativeRectangleIsNormalized(t *testing.T) {
	sel := geometry.RectSelection(geometry.Rect{X: 0.75, Y: 0.5, W: -0.5, H: -0.25})

	svg, err := NewRenderer().Render(baseOverlay(sel))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="1000" height="500"`))
	assert.Contains(t, svg, `<rect x="250" y="125" width="500" height="125"`)
	assert.NotContains(t, svg, "<defs>")
}

func TestRender_PolygonWithPattern(t *testing.T) {
	sel := geometry.PolygonSelection([]geometry.Point{{X: 0.5, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	o := baseOverlay(sel)
	o.FabricImage = "/swatches/linen.jpg?a=1&b=2"
	o.Zoom = 2

	svg, err := NewRenderer().Render(o)
	require.NoError(t, err)

	assert.Contains(t, svg, `<polygon points="500,0 1000,500 0,500"`)
	assert.Contains(t, svg, `fill="url(#fabric)"`)
	assert.Contains(t, svg, `patternTransform="translate(500 0) scale(2)"`)
	assert.Contains(t, svg, `href="/swatches/linen.jpg?a=1&amp;b=2"`)
	// the stored polygon is drawn without a repeated closing vertex
	assert.Equal(t, 1, strings.Count(svg, "500,0"))
}

func TestRender_Errors(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render(baseOverlay(geometry.Selection{}))
	assert.Error(t, err)

	o := baseOverlay(geometry.PolygonSelection([]geometry.Point{{X: 0.1, Y: 0.1}}))
	_, err = r.Render(o)
	assert.Error(t, err)

	o = baseOverlay(geometry.RectSelection(geometry.StandardDefault))
	o.ContainerWidth = 0
	_, err = r.Render(o)
	assert.Error(t, err)
}
