package pricing

import (
	"fmt"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
)

// ============================================================
// Quote
// ============================================================

type Addons struct {
	Motorization float64 `json:"motorization"`
	Valance      float64 `json:"valance"`
	SideChannels float64 `json:"sideChannels"`
}

func (a Addons) Total() float64 {
	return a.Motorization + a.Valance + a.SideChannels
}

// Quote is the price breakdown for one configuration. Values keep full
// precision; round only when presenting (see FormatMoney).
type Quote struct {
	UnitBase      float64 `json:"unitBase"`
	Addons        Addons  `json:"addons"`
	UnitPrice     float64 `json:"unitPrice"`
	Quantity      int     `json:"quantity"`
	ProductTotal  float64 `json:"productTotal"`
	InstallerCost float64 `json:"installerCost"`
	Total         float64 `json:"total"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Specialty     bool    `json:"specialty"`
	MeasureOnly   bool    `json:"measureOnly,omitempty"`
	Incomplete    bool    `json:"incomplete,omitempty"`
}

// ============================================================
// Engine
// ============================================================

// Engine prices shade configurations against a catalog. It holds no mutable
// state and is safe to share.
type Engine struct {
	shapes    *catalog.Shapes
	grids     *catalog.PriceGrids
	modifiers catalog.Modifiers
}

func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{
		shapes:    c.Shapes,
		grids:     c.Grids,
		modifiers: c.Modifiers,
	}
}

func (e *Engine) Modifiers() catalog.Modifiers {
	return e.modifiers
}

// Price computes the quote for cfg. Incomplete configurations price at zero
// instead of failing, so this can run on every keystroke.
func (e *Engine) Price(cfg models.ShadeConfiguration) Quote {
	if cfg.ServicePath == models.ServiceMeasureOnly {
		return e.measureOnly(cfg)
	}

	shape := e.shapes.Lookup(cfg.Shape)
	cfg.Shape = shape.ID
	quote := Quote{
		Quantity:  cfg.EffectiveQuantity(),
		Specialty: shape.IsSpecialty(),
	}

	if cfg.Fabric == nil {
		quote.Incomplete = true
		return quote
	}

	width, height := EffectiveDimensions(shape, cfg.Measurements)
	if width <= 0 || height <= 0 {
		quote.Incomplete = true
		return quote
	}
	quote.Width, quote.Height = width, height

	quote.UnitBase = e.BasePrice(shape.IsSpecialty(), cfg.Fabric.Group(), width, height)
	quote.Addons = e.addons(shape, cfg, width, height)
	quote.UnitPrice = quote.UnitBase + quote.Addons.Total()
	quote.ProductTotal = quote.UnitPrice * float64(quote.Quantity)
	quote.InstallerCost = InstallerCost(cfg.Installer, cfg.ServicePath, quote.Quantity)
	quote.Total = quote.ProductTotal + quote.InstallerCost

	return quote
}

// BasePrice looks up the grid price. Specialty shapes ignore the price group.
// A price group with no grid prices at zero.
func (e *Engine) BasePrice(specialty bool, group models.PriceGroup, width, height float64) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}

	var m *catalog.Matrix
	if specialty {
		m = e.grids.Specialty()
	} else {
		var ok bool
		m, ok = e.grids.Group(group)
		if !ok {
			return 0
		}
	}
	return m.At(BracketIndex(height), BracketIndex(width))
}

func (e *Engine) measureOnly(cfg models.ShadeConfiguration) Quote {
	q := Quote{
		Quantity:    1,
		MeasureOnly: true,
		UnitPrice:   e.modifiers.MeasureOnlyPrice,
	}
	q.ProductTotal = q.UnitPrice
	if cfg.Installer != nil {
		q.InstallerCost = cfg.Installer.MeasureFee
	}
	q.Total = q.ProductTotal + q.InstallerCost
	return q
}

func (e *Engine) addons(shape catalog.Shape, cfg models.ShadeConfiguration, width, height float64) Addons {
	var a Addons

	if motor, ok := cfg.EffectiveControl().(models.Motorized); ok {
		prices := e.modifiers.Motorization
		if !shape.IsSpecialty() {
			a.Motorization += prices.Surcharge
		}
		if motor.Remote {
			a.Motorization += prices.Remote
		}
		if motor.Hub {
			a.Motorization += prices.Hub
		}
		if motor.Charger {
			a.Motorization += prices.Charger
		}
		if motor.SunSensor {
			a.Motorization += prices.SunSensor
		}
	}

	a.Valance = e.modifiers.ValancePrice(cfg.Valance) * width
	// channels run up both sides
	a.SideChannels = e.modifiers.SideChannelPrice(cfg.SideChannel) * (height / 12) * 2

	return a
}

// InstallerCost prices the pro services attached to a line.
func InstallerCost(inst *models.Installer, path models.ServicePath, quantity int) float64 {
	if inst == nil {
		return 0
	}
	if quantity < 1 {
		quantity = 1
	}
	installs := inst.InstallFee * float64(quantity)

	switch {
	case path.WantsMeasure():
		cost := inst.MeasureFee + installs
		if cost < inst.Minimum {
			return inst.Minimum
		}
		return cost
	case path.WantsInstall():
		return installs
	default:
		return 0
	}
}

// FormatMoney renders a dollar amount rounded to cents.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
