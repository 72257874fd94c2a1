package pricing

import (
	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
)

// PriceSheet is one grid laid out for display: Rows are heights, columns
// widths, both labelled by Breakpoints.
type PriceSheet struct {
	Name        string      `json:"name"`
	Breakpoints []float64   `json:"breakpoints"`
	Rows        [][]float64 `json:"rows"`
}

// Sheet returns the grid for a price group, or the specialty grid. ok is
// false for a group with no grid.
func (e *Engine) Sheet(specialty bool, group models.PriceGroup) (sheet PriceSheet, ok bool) {
	var m *catalog.Matrix
	if specialty {
		m, ok = e.grids.Specialty(), e.grids.Specialty() != nil
		sheet.Name = "Specialty"
	} else {
		m, ok = e.grids.Group(group)
		sheet.Name = "Group " + string(group)
	}
	if !ok {
		return PriceSheet{}, false
	}

	sheet.Breakpoints = append([]float64(nil), catalog.Breakpoints[:]...)
	sheet.Rows = make([][]float64, catalog.GridSize)
	for h := range sheet.Rows {
		sheet.Rows[h] = append([]float64(nil), m[h][:]...)
	}
	return sheet, true
}

// Groups lists the price groups that have a grid.
func (e *Engine) Groups() []models.PriceGroup {
	return e.grids.Groups()
}
