package models

import (
	"strings"
	"time"
)

// ============================================================
// Shapes
// ============================================================

type ShapeID string

const (
	ShapeStandard              ShapeID = "standard"
	ShapeRightTriangleLeft     ShapeID = "right-triangle-left"
	ShapeRightTriangleRight    ShapeID = "right-triangle-right"
	ShapeAcuteTriangle         ShapeID = "acute-triangle"
	ShapeTrapezoidLeft         ShapeID = "trapezoid-left"
	ShapeTrapezoidRight        ShapeID = "trapezoid-right"
	ShapeFlatTopTrapezoidLeft  ShapeID = "flat-top-trapezoid-left"
	ShapeFlatTopTrapezoidRight ShapeID = "flat-top-trapezoid-right"
	ShapePentagon              ShapeID = "pentagon"
	ShapeFlatTopHexagon        ShapeID = "flat-top-hexagon"
)

// IsSpecialty reports whether the shape is anything other than the standard rectangle.
func (s ShapeID) IsSpecialty() bool {
	return s != ShapeStandard
}

// Field is a named dimension input declared by a shape.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// ============================================================
// Fabrics
// ============================================================

type Category string

const (
	CategoryBlackout       Category = "Blackout"
	CategoryLightFiltering Category = "Light Filtering"
)

// PriceGroup selects the price grid used for standard shades.
type PriceGroup string

const DefaultPriceGroup PriceGroup = "C"

// ParsePriceGroup normalizes a price group letter. Anything that is not a
// single letter falls back to DefaultPriceGroup.
func ParsePriceGroup(raw string) PriceGroup {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return DefaultPriceGroup
	}
	return PriceGroup(s)
}

type Fabric struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   Category   `json:"category"`
	PriceGroup PriceGroup `json:"priceGroup"`
	Collection string     `json:"collection,omitempty"`
}

// Group returns the fabric's price group, defaulting unknown values to C.
func (f Fabric) Group() PriceGroup {
	return ParsePriceGroup(string(f.PriceGroup))
}

// ============================================================
// Options
// ============================================================

type Mount string

const (
	InsideMount  Mount = "Inside Mount"
	OutsideMount Mount = "Outside Mount"
)

type Valance string

const (
	ValanceNone          Valance = "none"
	ValanceSquareFascia  Valance = "square-fascia"
	ValanceRoundCassette Valance = "round-cassette"
	ValanceFabricWrapped Valance = "fabric-wrapped"
)

type SideChannel string

const (
	SideChannelNone     SideChannel = "none"
	SideChannelStandard SideChannel = "standard"
)

// ServicePath is the choice made on the dimensions step: measure yourself,
// or have a pro measure (and optionally install).
type ServicePath string

const (
	ServiceSelfMeasure       ServicePath = "self-measure"
	ServiceMeasureOnly       ServicePath = "measure-only"
	ServiceMeasureAndInstall ServicePath = "measure-and-install"
	ServiceInstallOnly       ServicePath = "install-only"
)

// WantsMeasure reports whether a pro measurement visit is part of the order.
func (p ServicePath) WantsMeasure() bool {
	return p == ServiceMeasureOnly || p == ServiceMeasureAndInstall
}

// WantsInstall reports whether installation is part of the order.
func (p ServicePath) WantsInstall() bool {
	return p == ServiceMeasureAndInstall || p == ServiceInstallOnly
}

// ============================================================
// Installer
// ============================================================

type Installer struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	MeasureFee float64 `json:"measureFee" yaml:"measureFee"`
	InstallFee float64 `json:"installFee" yaml:"installFee"`
	Minimum    float64 `json:"minimum" yaml:"minimum"`
}

// ============================================================
// Cart
// ============================================================

// CartItem is a priced, frozen snapshot of a configuration.
type CartItem struct {
	ID           string             `json:"id"`
	Config       ShadeConfiguration `json:"config"`
	UnitPrice    float64            `json:"unitPrice"`
	InstallerFee float64            `json:"installerFee"`
	TotalPrice   float64            `json:"totalPrice"`
	CreatedAt    time.Time          `json:"timestamp"`
}
