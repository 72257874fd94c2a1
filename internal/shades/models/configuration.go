package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Controls
// ============================================================

type ControlType string

const (
	ControlMetalChain ControlType = "Metal Chain"
	ControlMotorized  ControlType = "Motorized"
)

type PowerSource string

const (
	PowerBattery   PowerSource = "battery"
	PowerHardwired PowerSource = "hardwired"
	PowerSolar     PowerSource = "solar"
)

// ControlOptions is either MetalChain or Motorized.
type ControlOptions interface {
	Type() ControlType
	isControl()
}

type MetalChain struct{}

func (MetalChain) Type() ControlType { return ControlMetalChain }
func (MetalChain) isControl()        {}

type Motorized struct {
	PowerSource PowerSource `json:"powerSource"`
	Remote      bool        `json:"remote"`
	Hub         bool        `json:"hub"`
	Charger     bool        `json:"charger"`
	SunSensor   bool        `json:"sunSensor"`
}

func (Motorized) Type() ControlType { return ControlMotorized }
func (Motorized) isControl()        {}

// DefaultMotor is what specialty shapes fall back to when a chain is not allowed.
func DefaultMotor() Motorized {
	return Motorized{PowerSource: PowerBattery}
}

// ============================================================
// Shade Configuration
// ============================================================

// ShadeConfiguration is the state of one cart line while it is being
// configured. Setters return a new value instead of mutating the receiver.
type ShadeConfiguration struct {
	Shape        ShapeID        `json:"shape"`
	ServicePath  ServicePath    `json:"servicePath"`
	ShadeType    Category       `json:"shadeType,omitempty"`
	Fabric       *Fabric        `json:"fabric,omitempty"`
	Mount        Mount          `json:"mount"`
	Measurements Measurements   `json:"dimensions"`
	Control      ControlOptions `json:"-"`
	Valance      Valance        `json:"valance"`
	SideChannel  SideChannel    `json:"sideChannel"`
	Quantity     int            `json:"quantity"`
	ZipCode      string         `json:"zipCode,omitempty"`
	Installer    *Installer     `json:"installer,omitempty"`
}

// NewConfiguration returns the state a fresh configurator starts in.
func NewConfiguration() ShadeConfiguration {
	return ShadeConfiguration{
		Shape:       ShapeStandard,
		ServicePath: ServiceSelfMeasure,
		Mount:       InsideMount,
		Control:     MetalChain{},
		Valance:     ValanceNone,
		SideChannel: SideChannelNone,
		Quantity:    1,
	}
}

// ControlType returns the active control type, treating an unset control as a chain.
func (c ShadeConfiguration) ControlType() ControlType {
	if c.Control == nil {
		return ControlMetalChain
	}
	return c.Control.Type()
}

// EffectiveControl applies the chain-only-on-standard rule without changing
// the configuration.
func (c ShadeConfiguration) EffectiveControl() ControlOptions {
	if c.Control == nil {
		if c.Shape.IsSpecialty() {
			return DefaultMotor()
		}
		return MetalChain{}
	}
	if c.Shape.IsSpecialty() && c.Control.Type() == ControlMetalChain {
		return DefaultMotor()
	}
	return c.Control
}

// WithShape switches shape. Specialty shapes cannot use a metal chain, so the
// control is moved to a motor when needed.
func (c ShadeConfiguration) WithShape(shape ShapeID) ShadeConfiguration {
	c.Shape = shape
	c.Control = c.EffectiveControl()
	return c
}

// WithControl sets the control, refusing a chain on specialty shapes.
func (c ShadeConfiguration) WithControl(ctrl ControlOptions) ShadeConfiguration {
	c.Control = ctrl
	c.Control = c.EffectiveControl()
	return c
}

func (c ShadeConfiguration) WithFabric(f Fabric) ShadeConfiguration {
	c.Fabric = &f
	return c
}

func (c ShadeConfiguration) WithDimension(key string, d Dimension) ShadeConfiguration {
	c.Measurements = c.Measurements.With(key, d)
	return c
}

func (c ShadeConfiguration) WithQuantity(q int) ShadeConfiguration {
	if q < 1 {
		q = 1
	}
	c.Quantity = q
	return c
}

// EffectiveQuantity treats anything below one as a single shade.
func (c ShadeConfiguration) EffectiveQuantity() int {
	if c.Quantity < 1 {
		return 1
	}
	return c.Quantity
}

// ============================================================
// JSON
// ============================================================

type controlEnvelope struct {
	Type ControlType `json:"type"`
	Motorized
}

type configurationAlias ShadeConfiguration

type configurationJSON struct {
	configurationAlias
	Control controlEnvelope `json:"control"`
}

func (c ShadeConfiguration) MarshalJSON() ([]byte, error) {
	out := configurationJSON{configurationAlias: configurationAlias(c)}
	switch ctrl := c.EffectiveControl().(type) {
	case Motorized:
		out.Control = controlEnvelope{Type: ControlMotorized, Motorized: ctrl}
	default:
		out.Control = controlEnvelope{Type: ControlMetalChain}
	}
	return json.Marshal(out)
}

func (c *ShadeConfiguration) UnmarshalJSON(data []byte) error {
	var in configurationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = ShadeConfiguration(in.configurationAlias)
	switch in.Control.Type {
	case ControlMotorized:
		c.Control = in.Control.Motorized
	case ControlMetalChain, "":
		c.Control = MetalChain{}
	default:
		return fmt.Errorf("unknown control type %q", in.Control.Type)
	}
	c.Control = c.EffectiveControl()
	return nil
}
