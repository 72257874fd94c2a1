package geometry

// ============================================================
// Geometry primitives
// ============================================================

// Point is a position. Inside a Selection it is image-relative (0..1 of the
// image's own width and height); elsewhere it is in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. W and H may be negative when the user
// drags up or to the left; the direction is kept as drawn.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Normalized returns the same rectangle with non-negative extents.
func (r Rect) Normalized() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Origin is the corner the drag started from.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Polygon is an open list of vertices. Rendering closes it implicitly; the
// stored list never repeats the first point.
type Polygon struct {
	Points []Point `json:"points"`
}

// ClosedPoints returns the vertices with the first one appended, for renderers
// that need an explicit closing edge. The polygon itself is not modified.
func (p Polygon) ClosedPoints() []Point {
	if len(p.Points) == 0 {
		return nil
	}
	out := make([]Point, 0, len(p.Points)+1)
	out = append(out, p.Points...)
	return append(out, p.Points[0])
}

// ============================================================
// Selection
// ============================================================

type SelectionKind string

const (
	KindNone      SelectionKind = ""
	KindRectangle SelectionKind = "rectangle"
	KindPolygon   SelectionKind = "polygon"
)

// Selection is exactly one of a rectangle or a polygon, in image-relative
// coordinates. The zero value is an empty selection.
type Selection struct {
	rect *Rect
	poly *Polygon
}

func RectSelection(r Rect) Selection {
	return Selection{rect: &r}
}

func PolygonSelection(points []Point) Selection {
	cp := make([]Point, len(points))
	copy(cp, points)
	return Selection{poly: &Polygon{Points: cp}}
}

func (s Selection) Kind() SelectionKind {
	switch {
	case s.rect != nil:
		return KindRectangle
	case s.poly != nil:
		return KindPolygon
	default:
		return KindNone
	}
}

func (s Selection) IsEmpty() bool {
	return s.Kind() == KindNone
}

func (s Selection) Rect() (Rect, bool) {
	if s.rect == nil {
		return Rect{}, false
	}
	return *s.rect, true
}

func (s Selection) Polygon() (Polygon, bool) {
	if s.poly == nil {
		return Polygon{}, false
	}
	cp := make([]Point, len(s.poly.Points))
	copy(cp, s.poly.Points)
	return Polygon{Points: cp}, true
}

// Anchor is the selection's first point: the rectangle origin or the first
// polygon vertex.
func (s Selection) Anchor() (Point, bool) {
	switch {
	case s.rect != nil:
		return s.rect.Origin(), true
	case s.poly != nil && len(s.poly.Points) > 0:
		return s.poly.Points[0], true
	default:
		return Point{}, false
	}
}

// Bounds returns the normalized bounding box of the selection.
func (s Selection) Bounds() (Rect, bool) {
	switch {
	case s.rect != nil:
		return s.rect.Normalized(), true
	case s.poly != nil && len(s.poly.Points) > 0:
		minX, minY := s.poly.Points[0].X, s.poly.Points[0].Y
		maxX, maxY := minX, minY
		for _, p := range s.poly.Points[1:] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
		return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
	default:
		return Rect{}, false
	}
}
