package geometry

// ============================================================
// Drawing
// ============================================================

// DragRect is the rectangle spanned from the press point to the current
// pointer position, both image-relative. The extents keep the drag direction.
func DragRect(start, current Point) Rect {
	return Rect{
		X: start.X,
		Y: start.Y,
		W: current.X - start.X,
		H: current.Y - start.Y,
	}
}

// AppendVertex adds one vertex to a polygon selection. A selection that is
// not a polygon is replaced by a one-point polygon.
func AppendVertex(sel Selection, p Point) Selection {
	if sel.poly == nil {
		return PolygonSelection([]Point{p})
	}
	points := make([]Point, len(sel.poly.Points), len(sel.poly.Points)+1)
	copy(points, sel.poly.Points)
	return Selection{poly: &Polygon{Points: append(points, p)}}
}

// UndoVertex drops the last polygon vertex. Removing the only vertex leaves
// an empty selection.
func UndoVertex(sel Selection) Selection {
	if sel.poly == nil || len(sel.poly.Points) <= 1 {
		return Selection{}
	}
	return PolygonSelection(sel.poly.Points[:len(sel.poly.Points)-1])
}
