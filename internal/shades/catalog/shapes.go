package catalog

import (
	"shade-store/internal/shades/models"
)

// ============================================================
// Shape Catalog
// ============================================================

// Shape describes one supported window shape and the measurements it needs.
// Mask is an SVG path in relative coordinates (0..1) that clips the fabric
// swatch in the shape picker.
type Shape struct {
	ID       models.ShapeID `json:"id"`
	Name     string         `json:"name"`
	Fields   []models.Field `json:"requiredFields"`
	Diagram  string         `json:"diagram"`
	Mask     string         `json:"mask"`
	Vertices int            `json:"vertices"`
}

func (s Shape) IsSpecialty() bool {
	return s.ID.IsSpecialty()
}

// Measurements builds the shape's measurement set, dropping undeclared fields.
func (s Shape) Measurements(values map[string]models.Dimension) models.Measurements {
	return models.NewMeasurements(s.Fields, values)
}

// Declares reports whether key is one of the shape's fields.
func (s Shape) Declares(key string) bool {
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func field(key, label string) models.Field {
	return models.Field{Key: key, Label: label}
}

var builtinShapes = []Shape{
	{
		ID:       models.ShapeStandard,
		Name:     "Standard",
		Fields:   []models.Field{field("width", "Width"), field("height", "Height")},
		Diagram:  "/shapes/standard.svg",
		Mask:     "M 0 0 L 1 0 L 1 1 L 0 1 Z",
		Vertices: 4,
	},
	{
		ID:       models.ShapeRightTriangleLeft,
		Name:     "Right Triangle (Left)",
		Fields:   []models.Field{field("width", "Bottom Width"), field("leftHeight", "Left Height")},
		Diagram:  "/shapes/right-triangle-left.svg",
		Mask:     "M 0 0 L 1 1 L 0 1 Z",
		Vertices: 3,
	},
	{
		ID:       models.ShapeRightTriangleRight,
		Name:     "Right Triangle (Right)",
		Fields:   []models.Field{field("width", "Bottom Width"), field("rightHeight", "Right Height")},
		Diagram:  "/shapes/right-triangle-right.svg",
		Mask:     "M 1 0 L 1 1 L 0 1 Z",
		Vertices: 3,
	},
	{
		ID:       models.ShapeAcuteTriangle,
		Name:     "Acute Triangle",
		Fields:   []models.Field{field("baseLength", "Base Length"), field("peakHeight", "Peak Height")},
		Diagram:  "/shapes/acute-triangle.svg",
		Mask:     "M 0.5 0 L 1 1 L 0 1 Z",
		Vertices: 3,
	},
	{
		ID:   models.ShapeTrapezoidLeft,
		Name: "Trapezoid (Left)",
		Fields: []models.Field{
			field("width", "Bottom Width"),
			field("leftHeight", "Left Height"),
			field("rightHeight", "Right Height"),
		},
		Diagram:  "/shapes/trapezoid-left.svg",
		Mask:     "M 0 0 L 1 0.4 L 1 1 L 0 1 Z",
		Vertices: 4,
	},
	{
		ID:   models.ShapeTrapezoidRight,
		Name: "Trapezoid (Right)",
		Fields: []models.Field{
			field("width", "Bottom Width"),
			field("leftHeight", "Left Height"),
			field("rightHeight", "Right Height"),
		},
		Diagram:  "/shapes/trapezoid-right.svg",
		Mask:     "M 0 0.4 L 1 0 L 1 1 L 0 1 Z",
		Vertices: 4,
	},
	{
		ID:   models.ShapeFlatTopTrapezoidLeft,
		Name: "Flat Top Trapezoid (Left)",
		Fields: []models.Field{
			field("bottomWidth", "Bottom Width"),
			field("topWidth", "Top Width"),
			field("height", "Height"),
			field("leftAngledLength", "Left Angled Length"),
		},
		Diagram:  "/shapes/flat-top-trapezoid-left.svg",
		Mask:     "M 0.35 0 L 1 0 L 1 1 L 0 1 Z",
		Vertices: 4,
	},
	{
		ID:   models.ShapeFlatTopTrapezoidRight,
		Name: "Flat Top Trapezoid (Right)",
		Fields: []models.Field{
			field("bottomWidth", "Bottom Width"),
			field("topWidth", "Top Width"),
			field("height", "Height"),
			field("rightAngledLength", "Right Angled Length"),
		},
		Diagram:  "/shapes/flat-top-trapezoid-right.svg",
		Mask:     "M 0 0 L 0.65 0 L 1 1 L 0 1 Z",
		Vertices: 4,
	},
	{
		ID:   models.ShapePentagon,
		Name: "Pentagon",
		Fields: []models.Field{
			field("width", "Width"),
			field("leftHeight", "Left Height"),
			field("rightHeight", "Right Height"),
			field("centerHeight", "Center Height"),
		},
		Diagram:  "/shapes/pentagon.svg",
		Mask:     "M 0.5 0 L 1 0.35 L 1 1 L 0 1 L 0 0.35 Z",
		Vertices: 5,
	},
	{
		ID:   models.ShapeFlatTopHexagon,
		Name: "Flat Top Hexagon",
		Fields: []models.Field{
			field("topWidth", "Top Width"),
			field("width", "Middle Width"),
			field("bottomWidth", "Bottom Width"),
			field("height", "Height"),
			field("leftAngledLength", "Left Angled Length"),
		},
		Diagram:  "/shapes/flat-top-hexagon.svg",
		Mask:     "M 0.25 0 L 0.75 0 L 1 0.5 L 0.75 1 L 0.25 1 L 0 0.5 Z",
		Vertices: 6,
	},
}

// Shapes is the immutable shape catalog.
type Shapes struct {
	order []Shape
	byID  map[models.ShapeID]Shape
}

// NewShapes indexes the given entries. The first entry with the standard id
// is used as the lookup-miss fallback.
func NewShapes(entries []Shape) *Shapes {
	s := &Shapes{byID: make(map[models.ShapeID]Shape, len(entries))}
	for _, e := range entries {
		if _, dup := s.byID[e.ID]; dup {
			continue
		}
		s.order = append(s.order, e)
		s.byID[e.ID] = e
	}
	return s
}

// DefaultShapes returns the built-in catalog.
func DefaultShapes() *Shapes {
	return NewShapes(builtinShapes)
}

// Lookup returns the shape for id, falling back to the standard rectangle.
func (s *Shapes) Lookup(id models.ShapeID) Shape {
	if shape, ok := s.byID[id]; ok {
		return shape
	}
	return s.byID[models.ShapeStandard]
}

// Find is Lookup without the fallback.
func (s *Shapes) Find(id models.ShapeID) (Shape, bool) {
	shape, ok := s.byID[id]
	return shape, ok
}

func (s *Shapes) All() []Shape {
	out := make([]Shape, len(s.order))
	copy(out, s.order)
	return out
}
