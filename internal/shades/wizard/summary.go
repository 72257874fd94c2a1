package wizard

import (
	"fmt"
	"strings"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
)

var serviceLabels = map[models.ServicePath]string{
	models.ServiceSelfMeasure:       "I'll measure",
	models.ServiceMeasureOnly:       "Professional measure only",
	models.ServiceMeasureAndInstall: "Professional measure & install",
	models.ServiceInstallOnly:       "Professional install",
}

var valanceLabels = map[models.Valance]string{
	models.ValanceNone:          "No valance",
	models.ValanceSquareFascia:  "Square fascia valance",
	models.ValanceRoundCassette: "Round cassette valance",
	models.ValanceFabricWrapped: "Fabric-wrapped valance",
}

var powerLabels = map[models.PowerSource]string{
	models.PowerBattery:   "Rechargeable battery",
	models.PowerHardwired: "Hardwired",
	models.PowerSolar:     "Solar",
}

// ServiceLabel is the customer-facing name of a service path.
func ServiceLabel(p models.ServicePath) string {
	if l, ok := serviceLabels[p]; ok {
		return l
	}
	return serviceLabels[models.ServiceSelfMeasure]
}

func ValanceLabel(v models.Valance) string {
	if l, ok := valanceLabels[v]; ok {
		return l
	}
	return valanceLabels[models.ValanceNone]
}

// Summary describes a step's choice. It is computed from the configuration
// alone; the wizard keeps no summary state.
func Summary(step Step, cfg models.ShadeConfiguration, shapes *catalog.Shapes) string {
	switch step {
	case StepShape:
		return shapes.Lookup(cfg.Shape).Name

	case StepDimensions:
		if cfg.ServicePath == models.ServiceMeasureOnly || cfg.ServicePath == models.ServiceMeasureAndInstall {
			return ServiceLabel(cfg.ServicePath)
		}
		size := FormatSize(shapes.Lookup(cfg.Shape), cfg.Measurements)
		if cfg.ServicePath == models.ServiceInstallOnly && size != "" {
			return size + " + " + ServiceLabel(cfg.ServicePath)
		}
		return size

	case StepShadeType:
		if cfg.ShadeType == "" {
			return "All fabrics"
		}
		return string(cfg.ShadeType)

	case StepFabric:
		if cfg.Fabric == nil {
			return ""
		}
		return fmt.Sprintf("%s (Group %s)", cfg.Fabric.Name, cfg.Fabric.Group())

	case StepMount:
		return string(cfg.Mount)

	case StepControl:
		return ControlSummary(cfg.EffectiveControl())

	case StepFinish:
		channels := "No side channels"
		if cfg.SideChannel == models.SideChannelStandard {
			channels = "Side channels"
		}
		return ValanceLabel(cfg.Valance) + " · " + channels

	case StepQuantity:
		q := cfg.EffectiveQuantity()
		if q == 1 {
			return "1 shade"
		}
		return fmt.Sprintf("%d shades", q)
	}
	return ""
}

// FormatSize renders the measurements. Standard shades read "W × H"; other
// shapes list every declared field that has a value.
func FormatSize(shape catalog.Shape, m models.Measurements) string {
	if !shape.IsSpecialty() {
		w, okW := m.Get("width")
		h, okH := m.Get("height")
		if !okW || !okH {
			return ""
		}
		return w.String() + " × " + h.String()
	}

	var parts []string
	for _, f := range shape.Fields {
		d, ok := m.Get(f.Key)
		if !ok {
			continue
		}
		parts = append(parts, f.Label+" "+d.String())
	}
	return strings.Join(parts, ", ")
}

// ControlSummary describes a control option, e.g. "Motorized · Solar · Remote, Hub".
func ControlSummary(ctrl models.ControlOptions) string {
	motor, ok := ctrl.(models.Motorized)
	if !ok {
		return string(models.ControlMetalChain)
	}

	parts := []string{string(models.ControlMotorized)}
	if l, ok := powerLabels[motor.PowerSource]; ok {
		parts = append(parts, l)
	}

	var extras []string
	if motor.Remote {
		extras = append(extras, "Remote")
	}
	if motor.Hub {
		extras = append(extras, "Hub")
	}
	if motor.Charger {
		extras = append(extras, "Charger")
	}
	if motor.SunSensor {
		extras = append(extras, "Sun sensor")
	}
	if len(extras) > 0 {
		parts = append(parts, strings.Join(extras, ", "))
	}
	return strings.Join(parts, " · ")
}
