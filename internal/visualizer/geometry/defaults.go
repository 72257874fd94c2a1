package geometry

import (
	"fmt"

	"shade-store/internal/shades/models"
)

// StandardDefault is the seeded rectangle for the standard shape.
var StandardDefault = Rect{X: 0.3, Y: 0.22, W: 0.4, H: 0.5}

// Hand-tuned outlines that sit over the window in the stock room photos.
var defaultOutlines = map[models.ShapeID]string{
	models.ShapeRightTriangleLeft:     "M 0.32 0.2 L 0.68 0.72 L 0.32 0.72 Z",
	models.ShapeRightTriangleRight:    "M 0.68 0.2 L 0.68 0.72 L 0.32 0.72 Z",
	models.ShapeAcuteTriangle:         "M 0.5 0.2 L 0.7 0.72 L 0.3 0.72 Z",
	models.ShapeTrapezoidLeft:         "M 0.3 0.22 L 0.7 0.4 L 0.7 0.72 L 0.3 0.72 Z",
	models.ShapeTrapezoidRight:        "M 0.3 0.4 L 0.7 0.22 L 0.7 0.72 L 0.3 0.72 Z",
	models.ShapeFlatTopTrapezoidLeft:  "M 0.44 0.22 L 0.7 0.22 L 0.7 0.72 L 0.3 0.72 Z",
	models.ShapeFlatTopTrapezoidRight: "M 0.3 0.22 L 0.56 0.22 L 0.7 0.72 L 0.3 0.72 Z",
	models.ShapePentagon:              "M 0.5 0.18 L 0.7 0.34 L 0.7 0.72 L 0.3 0.72 L 0.3 0.34 Z",
	models.ShapeFlatTopHexagon:        "M 0.4 0.2 L 0.6 0.2 L 0.7 0.46 L 0.6 0.72 L 0.4 0.72 L 0.3 0.46 Z",
}

// Defaults holds the pre-calibrated selection for each shape.
type Defaults struct {
	polygons map[models.ShapeID][]Point
}

// NewDefaults parses the built-in outlines.
func NewDefaults() (*Defaults, error) {
	d := &Defaults{polygons: make(map[models.ShapeID][]Point, len(defaultOutlines))}
	for id, outline := range defaultOutlines {
		points, _, err := ParsePath(outline)
		if err != nil {
			return nil, fmt.Errorf("default outline for %s: %w", id, err)
		}
		d.polygons[id] = points
	}
	return d, nil
}

func MustDefaults() *Defaults {
	d, err := NewDefaults()
	if err != nil {
		panic(err)
	}
	return d
}

// For returns the seeded selection for a shape. Standard gets the fixed
// rectangle; a specialty shape without an outline gets the rectangle's
// corners as a polygon so it still renders in polygon mode.
func (d *Defaults) For(shape models.ShapeID) Selection {
	if !shape.IsSpecialty() {
		return RectSelection(StandardDefault)
	}
	if points, ok := d.polygons[shape]; ok {
		return PolygonSelection(points)
	}
	r := StandardDefault
	return PolygonSelection([]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	})
}
