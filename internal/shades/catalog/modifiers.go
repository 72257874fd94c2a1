package catalog

import (
	"fmt"
	"io"

	"shade-store/internal/shades/models"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Modifiers
// ============================================================

type MotorPrices struct {
	Surcharge float64 `yaml:"surcharge" json:"surcharge"`
	Remote    float64 `yaml:"remote" json:"remote"`
	Hub       float64 `yaml:"hub" json:"hub"`
	Charger   float64 `yaml:"charger" json:"charger"`
	SunSensor float64 `yaml:"sunSensor" json:"sunSensor"`
}

type BulkDiscount struct {
	SubtotalThreshold float64 `yaml:"subtotalThreshold" json:"subtotalThreshold"`
	ItemThreshold     int     `yaml:"itemThreshold" json:"itemThreshold"`
	Rate              float64 `yaml:"rate" json:"rate"`
}

// Modifiers is the add-on price list.
type Modifiers struct {
	MeasureOnlyPrice   float64                        `yaml:"measureOnlyPrice" json:"measureOnlyPrice"`
	Motorization       MotorPrices                    `yaml:"motorization" json:"motorization"`
	ValancePerInch     map[models.Valance]float64     `yaml:"valancePerInch" json:"valancePerInch"`
	SideChannelPerFoot map[models.SideChannel]float64 `yaml:"sideChannelPerFoot" json:"sideChannelPerFoot"`
	BulkDiscount       BulkDiscount                   `yaml:"bulkDiscount" json:"bulkDiscount"`
}

// ValancePrice returns the per-inch price; unknown valances cost nothing.
func (m Modifiers) ValancePrice(v models.Valance) float64 {
	return m.ValancePerInch[v]
}

// SideChannelPrice returns the per-foot price; unknown channels cost nothing.
func (m Modifiers) SideChannelPrice(s models.SideChannel) float64 {
	return m.SideChannelPerFoot[s]
}

func LoadModifiers(r io.Reader) (Modifiers, error) {
	var m Modifiers
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return Modifiers{}, fmt.Errorf("decode modifiers: %w", err)
	}
	if m.BulkDiscount.Rate < 0 || m.BulkDiscount.Rate >= 1 {
		return Modifiers{}, fmt.Errorf("modifiers: bulk discount rate %v out of range", m.BulkDiscount.Rate)
	}
	return m, nil
}
