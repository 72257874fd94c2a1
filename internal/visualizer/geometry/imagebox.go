package geometry

// ============================================================
// Image Box
// ============================================================

// ImageBox is where an image is drawn inside its container when scaled with
// object-fit: contain. Offsets are the letterbox margins.
type ImageBox struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// ContainBox fits an image with the given aspect ratio (width/height) into the
// container and centers it. It must be recomputed whenever the container is
// resized or the image changes.
func ContainBox(containerW, containerH, aspect float64) ImageBox {
	if containerW <= 0 || containerH <= 0 {
		return ImageBox{}
	}
	if aspect <= 0 {
		return ImageBox{Width: containerW, Height: containerH}
	}

	containerAspect := containerW / containerH
	if containerAspect > aspect {
		// container is wider than the image: bars left and right
		w := containerH * aspect
		return ImageBox{Width: w, Height: containerH, OffsetX: (containerW - w) / 2}
	}
	h := containerW / aspect
	return ImageBox{Width: containerW, Height: h, OffsetY: (containerH - h) / 2}
}

// IsZero reports an unusable box, e.g. before the image has loaded.
func (b ImageBox) IsZero() bool {
	return b.Width <= 0 || b.Height <= 0
}

// ToRelative maps a container pixel to image-relative coordinates.
func (b ImageBox) ToRelative(p Point) Point {
	if b.IsZero() {
		return Point{}
	}
	return Point{
		X: (p.X - b.OffsetX) / b.Width,
		Y: (p.Y - b.OffsetY) / b.Height,
	}
}

// ToPixel maps image-relative coordinates back to container pixels. Only
// used for drawing.
func (b ImageBox) ToPixel(p Point) Point {
	return Point{
		X: b.OffsetX + p.X*b.Width,
		Y: b.OffsetY + p.Y*b.Height,
	}
}

// RectToPixel projects a relative rectangle, keeping the sign of its extents.
func (b ImageBox) RectToPixel(r Rect) Rect {
	origin := b.ToPixel(r.Origin())
	return Rect{X: origin.X, Y: origin.Y, W: r.W * b.Width, H: r.H * b.Height}
}

// RectToRelative is the inverse of RectToPixel.
func (b ImageBox) RectToRelative(r Rect) Rect {
	if b.IsZero() {
		return Rect{}
	}
	origin := b.ToRelative(r.Origin())
	return Rect{X: origin.X, Y: origin.Y, W: r.W / b.Width, H: r.H / b.Height}
}

// PointsToPixel projects a list of relative points.
func (b ImageBox) PointsToPixel(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = b.ToPixel(p)
	}
	return out
}
