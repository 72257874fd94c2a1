package pricing

import (
	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
)

// ============================================================
// Brackets
// ============================================================

// BracketIndex returns the index of the smallest breakpoint that is >= inches.
// Sizes beyond the last breakpoint clamp to the last bracket.
func BracketIndex(inches float64) int {
	for i, bp := range catalog.Breakpoints {
		if inches <= bp {
			return i
		}
	}
	return catalog.GridSize - 1
}

// ============================================================
// Effective dimensions
// ============================================================

// Width-like and height-like field names scanned for specialty shapes. The
// lists are part of the pricing policy; leftAngledLength and rightAngledLength
// count as heights.
var (
	widthKeys  = []string{"width", "bottomWidth", "topWidth"}
	heightKeys = []string{"height", "leftHeight", "rightHeight", "centerHeight", "leftAngledLength", "rightAngledLength"}
)

// EffectiveDimensions resolves the width and height used for the grid lookup.
// Only fields declared by the shape are read.
func EffectiveDimensions(shape catalog.Shape, m models.Measurements) (width, height float64) {
	m = m.Restrict(shape.Fields)

	width = m.Value("width")
	height = m.Value("height")
	if !shape.IsSpecialty() {
		return width, height
	}

	width = maxOf(width, m, widthKeys)
	height = maxOf(height, m, heightKeys)

	if width == 0 && height == 0 {
		var largest float64
		for _, key := range m.Keys() {
			if v := m.Value(key); v > largest {
				largest = v
			}
		}
		width, height = largest, largest
	}
	return width, height
}

func maxOf(start float64, m models.Measurements, keys []string) float64 {
	out := start
	for _, key := range keys {
		if _, ok := m.Get(key); !ok {
			continue
		}
		if v := m.Value(key); v > out {
			out = v
		}
	}
	return out
}
