package wizard

import (
	"errors"
	"fmt"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
)

var (
	ErrStepHidden  = errors.New("step has not been reached")
	ErrUnknownStep = errors.New("unknown step")
	ErrNotOpen     = errors.New("step is not open")
)

type Step string

const (
	StepShape      Step = "shape"
	StepDimensions Step = "dimensions"
	StepShadeType  Step = "shade-type"
	StepFabric     Step = "fabric"
	StepMount      Step = "mount"
	StepControl    Step = "control"
	StepFinish     Step = "finish"
	StepQuantity   Step = "quantity"
)

// Steps is the fixed order of the configurator.
var Steps = []Step{
	StepShape, StepDimensions, StepShadeType, StepFabric,
	StepMount, StepControl, StepFinish, StepQuantity,
}

var stepTitles = map[Step]string{
	StepShape:      "Window Shape",
	StepDimensions: "Measurements",
	StepShadeType:  "Shade Type",
	StepFabric:     "Fabric",
	StepMount:      "Mount",
	StepControl:    "Control",
	StepFinish:     "Finishing Options",
	StepQuantity:   "Quantity",
}

func (s Step) Title() string {
	return stepTitles[s]
}

func ParseStep(raw string) (Step, error) {
	for _, s := range Steps {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, raw)
}

type Status string

const (
	StatusHidden    Status = "hidden"
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	// StatusPending marks a reached step that was collapsed before it was
	// confirmed, e.g. when another step was reopened over it.
	StatusPending Status = "pending"
)

// StepView is one row of the configurator as the client renders it.
type StepView struct {
	Step    Step   `json:"step"`
	Title   string `json:"title"`
	Status  Status `json:"status"`
	Summary string `json:"summary,omitempty"`
}

// ============================================================
// Wizard
// ============================================================

// Wizard walks one shade configuration through the steps. At most one step
// is open; the zero open step means the wizard is closed.
type Wizard struct {
	shapes    *catalog.Shapes
	cfg       models.ShadeConfiguration
	open      Step
	completed map[Step]bool
	reached   map[Step]bool
}

// New starts a wizard on the first step with a fresh configuration.
func New(shapes *catalog.Shapes) *Wizard {
	return &Wizard{
		shapes:    shapes,
		cfg:       models.NewConfiguration(),
		open:      StepShape,
		completed: make(map[Step]bool, len(Steps)),
		reached:   map[Step]bool{StepShape: true},
	}
}

// Resume opens an existing configuration for editing, e.g. a cart line.
// Every step starts completed and the wizard is closed.
func Resume(shapes *catalog.Shapes, cfg models.ShadeConfiguration) *Wizard {
	w := &Wizard{
		shapes:    shapes,
		completed: make(map[Step]bool, len(Steps)),
		reached:   make(map[Step]bool, len(Steps)),
	}
	w.cfg = w.normalize(cfg)
	for _, s := range Steps {
		w.completed[s] = true
		w.reached[s] = true
	}
	return w
}

// Config returns the current configuration.
func (w *Wizard) Config() models.ShadeConfiguration {
	return w.cfg
}

// Current returns the open step, if any.
func (w *Wizard) Current() (Step, bool) {
	return w.open, w.open != ""
}

// Done reports whether every step is completed and none is open.
func (w *Wizard) Done() bool {
	if w.open != "" {
		return false
	}
	for _, s := range Steps {
		if !w.completed[s] {
			return false
		}
	}
	return true
}

func (w *Wizard) Status(step Step) Status {
	switch {
	case w.open == step:
		return StatusOpen
	case w.completed[step]:
		return StatusCompleted
	case w.reached[step]:
		return StatusPending
	default:
		return StatusHidden
	}
}

// View lists every step with its status and, for completed steps, the
// summary derived from the configuration.
func (w *Wizard) View() []StepView {
	out := make([]StepView, 0, len(Steps))
	for _, s := range Steps {
		v := StepView{Step: s, Title: s.Title(), Status: w.Status(s)}
		if v.Status == StatusCompleted {
			v.Summary = Summary(s, w.cfg, w.shapes)
		}
		out = append(out, v)
	}
	return out
}

// Reopen opens a reached step for editing and clears its completed mark.
// The previously open step, if any, is collapsed without being confirmed and
// reports StatusPending until it is confirmed.
func (w *Wizard) Reopen(step Step) error {
	if _, err := ParseStep(string(step)); err != nil {
		return err
	}
	if w.open == step {
		return nil
	}
	if !w.reached[step] {
		return fmt.Errorf("%w: %s", ErrStepHidden, step)
	}

	delete(w.completed, step)
	w.open = step
	return nil
}

// Edit applies fn to the configuration. Only the open step may be edited.
func (w *Wizard) Edit(step Step, fn func(models.ShadeConfiguration) models.ShadeConfiguration) error {
	if w.open != step {
		return fmt.Errorf("%w: %s", ErrNotOpen, step)
	}
	w.cfg = fn(w.cfg)
	return nil
}

// Confirm completes the open step and opens the next step that is not yet
// completed, searching forward and then from the start. When none is left
// the wizard closes and ok is false. Confirming a step that is already
// completed changes nothing.
func (w *Wizard) Confirm(step Step) (next Step, ok bool, err error) {
	if w.open != step {
		if w.completed[step] {
			return w.open, w.open != "", nil
		}
		return "", false, fmt.Errorf("%w: %s", ErrNotOpen, step)
	}

	w.cfg = w.normalize(w.cfg)
	w.completed[step] = true
	w.open = ""

	start := indexOf(step)
	for i := 1; i <= len(Steps); i++ {
		candidate := Steps[(start+i)%len(Steps)]
		if !w.completed[candidate] {
			w.open = candidate
			w.reached[candidate] = true
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// normalize applies the configuration rules that hold at every confirmed
// step: unknown shapes become standard, measurements are limited to the
// shape's fields, specialty shapes are motorized and quantity is at least one.
func (w *Wizard) normalize(cfg models.ShadeConfiguration) models.ShadeConfiguration {
	shape := w.shapes.Lookup(cfg.Shape)
	cfg = cfg.WithShape(shape.ID)
	cfg.Measurements = cfg.Measurements.Restrict(shape.Fields)
	cfg = cfg.WithQuantity(cfg.Quantity)
	if cfg.ServicePath == "" {
		cfg.ServicePath = models.ServiceSelfMeasure
	}
	if cfg.Mount == "" {
		cfg.Mount = models.InsideMount
	}
	if cfg.Valance == "" {
		cfg.Valance = models.ValanceNone
	}
	if cfg.SideChannel == "" {
		cfg.SideChannel = models.SideChannelNone
	}
	return cfg
}

func indexOf(step Step) int {
	for i, s := range Steps {
		if s == step {
			return i
		}
	}
	return -1
}
