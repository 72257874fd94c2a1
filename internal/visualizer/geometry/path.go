package geometry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Path Parser
// ============================================================

var pathCommand = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath reads the straight-line subset of SVG path data (M, L, H, V, Z,
// absolute and relative) into points. Z reports closed=true but does not
// repeat the first point.
func ParsePath(d string) (points []Point, closed bool, err error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, false, fmt.Errorf("empty path")
	}

	var currentX, currentY float64

	for _, match := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords, err := parseCoords(match[2])
		if err != nil {
			return nil, false, fmt.Errorf("path command %s: %w", cmd, err)
		}

		switch cmd {
		case "M", "L":
			for i := 0; i+1 < len(coords); i += 2 {
				currentX, currentY = coords[i], coords[i+1]
				points = append(points, Point{X: currentX, Y: currentY})
			}

		case "m", "l":
			for i := 0; i+1 < len(coords); i += 2 {
				currentX += coords[i]
				currentY += coords[i+1]
				points = append(points, Point{X: currentX, Y: currentY})
			}

		case "H":
			for _, x := range coords {
				currentX = x
				points = append(points, Point{X: currentX, Y: currentY})
			}

		case "h":
			for _, dx := range coords {
				currentX += dx
				points = append(points, Point{X: currentX, Y: currentY})
			}

		case "V":
			for _, y := range coords {
				currentY = y
				points = append(points, Point{X: currentX, Y: currentY})
			}

		case "v":
			for _, dy := range coords {
				currentY += dy
				points = append(points, Point{X: currentX, Y: currentY})
			}

		case "Z", "z":
			closed = true
			if len(points) > 0 {
				currentX, currentY = points[0].X, points[0].Y
			}
		}
	}

	if len(points) == 0 {
		return nil, false, fmt.Errorf("path has no points")
	}
	return points, closed, nil
}

func parseCoords(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	s = strings.ReplaceAll(s, ",", " ")
	parts := strings.Fields(s)

	coords := make([]float64, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q", part)
		}
		coords = append(coords, val)
	}
	return coords, nil
}

// FormatPath writes points back as absolute path data, closed with Z.
func FormatPath(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatPoint(p))
	}
	b.WriteString(" Z")
	return b.String()
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
