package catalog

import (
	"fmt"
	"io"

	"shade-store/internal/shades/models"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Price Grids
// ============================================================

// GridSize is the number of width and height brackets in every price grid.
const GridSize = 10

// Breakpoints are the bracket upper bounds in inches, shared by both axes.
var Breakpoints = [GridSize]float64{36, 48, 60, 72, 84, 96, 108, 120, 132, 144}

// Matrix is a price grid indexed [heightBracket][widthBracket].
type Matrix [GridSize][GridSize]float64

// At returns the cell for the given bracket indexes, clamping out-of-range indexes.
func (m *Matrix) At(heightIdx, widthIdx int) float64 {
	return m[clampIndex(heightIdx)][clampIndex(widthIdx)]
}

func clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= GridSize {
		return GridSize - 1
	}
	return i
}

// PriceGrids holds one matrix per price group plus the specialty-shape matrix.
type PriceGrids struct {
	groups    map[models.PriceGroup]*Matrix
	specialty *Matrix
}

// Group returns the matrix for a price group. A missing group is reported, not defaulted.
func (g *PriceGrids) Group(group models.PriceGroup) (*Matrix, bool) {
	m, ok := g.groups[group]
	return m, ok
}

// Specialty returns the matrix used for every non-rectangular shape.
func (g *PriceGrids) Specialty() *Matrix {
	return g.specialty
}

// Groups lists the loaded price group letters in alphabetical order.
func (g *PriceGrids) Groups() []models.PriceGroup {
	out := make([]models.PriceGroup, 0, len(g.groups))
	for letter := 'A'; letter <= 'Z'; letter++ {
		pg := models.PriceGroup(string(letter))
		if _, ok := g.groups[pg]; ok {
			out = append(out, pg)
		}
	}
	return out
}

type gridFile struct {
	Breakpoints []float64              `yaml:"breakpoints"`
	Groups      map[string][][]float64 `yaml:"groups"`
	Specialty   [][]float64            `yaml:"specialty"`
}

// LoadPriceGrids decodes a YAML grid file. Every matrix must be 10x10 and the
// breakpoints, when present, must match Breakpoints.
func LoadPriceGrids(r io.Reader) (*PriceGrids, error) {
	var raw gridFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode price grids: %w", err)
	}

	if len(raw.Breakpoints) > 0 {
		if len(raw.Breakpoints) != GridSize {
			return nil, fmt.Errorf("price grids: want %d breakpoints, got %d", GridSize, len(raw.Breakpoints))
		}
		for i, bp := range raw.Breakpoints {
			if bp != Breakpoints[i] {
				return nil, fmt.Errorf("price grids: breakpoint %d is %v, want %v", i, bp, Breakpoints[i])
			}
		}
	}

	grids := &PriceGrids{groups: make(map[models.PriceGroup]*Matrix, len(raw.Groups))}
	for letter, rows := range raw.Groups {
		m, err := toMatrix(rows)
		if err != nil {
			return nil, fmt.Errorf("price group %s: %w", letter, err)
		}
		grids.groups[models.ParsePriceGroup(letter)] = m
	}

	if raw.Specialty == nil {
		return nil, fmt.Errorf("price grids: specialty matrix missing")
	}
	specialty, err := toMatrix(raw.Specialty)
	if err != nil {
		return nil, fmt.Errorf("specialty grid: %w", err)
	}
	grids.specialty = specialty

	return grids, nil
}

func toMatrix(rows [][]float64) (*Matrix, error) {
	if len(rows) != GridSize {
		return nil, fmt.Errorf("want %d rows, got %d", GridSize, len(rows))
	}
	var m Matrix
	for i, row := range rows {
		if len(row) != GridSize {
			return nil, fmt.Errorf("row %d: want %d columns, got %d", i, GridSize, len(row))
		}
		copy(m[i][:], row)
	}
	return &m, nil
}
