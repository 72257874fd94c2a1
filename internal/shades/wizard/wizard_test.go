package wizard

import (
	"testing"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linen = models.Fabric{ID: "fab-003", Name: "Linen Natural", Category: models.CategoryLightFiltering, PriceGroup: "D"}

func confirm(t *testing.T, w *Wizard, step Step) Step {
	t.Helper()
	next, _, err := w.Confirm(step)
	require.NoError(t, err)
	return next
}

// completeAll walks a fresh wizard through every step.
func completeAll(t *testing.T, w *Wizard) {
	t.Helper()

	require.NoError(t, w.Edit(StepShape, func(c models.ShadeConfiguration) models.ShadeConfiguration {
		return c.WithShape(models.ShapeStandard)
	}))
	assert.Equal(t, StepDimensions, confirm(t, w, StepShape))

	require.NoError(t, w.Edit(StepDimensions, func(c models.ShadeConfiguration) models.ShadeConfiguration {
		return c.WithDimension("width", models.Inches(36, models.FractionThreeEighths)).
			WithDimension("height", models.Inches(60, ""))
	}))
	assert.Equal(t, StepShadeType, confirm(t, w, StepDimensions))
	assert.Equal(t, StepFabric, confirm(t, w, StepShadeType))

	require.NoError(t, w.Edit(StepFabric, func(c models.ShadeConfiguration) models.ShadeConfiguration {
		return c.WithFabric(linen)
	}))
	for _, s := range []Step{StepFabric, StepMount, StepControl, StepFinish} {
		confirm(t, w, s)
	}
	_, ok, err := w.Confirm(StepQuantity)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWizard_WalksStepsInOrder(t *testing.T) {
	w := New(catalog.DefaultShapes())

	step, ok := w.Current()
	require.True(t, ok)
	assert.Equal(t, StepShape, step)
	assert.Equal(t, StatusHidden, w.Status(StepFabric))

	completeAll(t, w)

	assert.True(t, w.Done())
	_, ok = w.Current()
	assert.False(t, ok)
	for _, v := range w.View() {
		assert.Equal(t, StatusCompleted, v.Status, v.Step)
	}
}

func TestWizard_AtMostOneStepOpen(t *testing.T) {
	w := New(catalog.DefaultShapes())
	completeAll(t, w)

	require.NoError(t, w.Reopen(StepMount))
	require.NoError(t, w.Reopen(StepShape))

	open := 0
	for _, v := range w.View() {
		if v.Status == StatusOpen {
			open++
		}
	}
	assert.Equal(t, 1, open)
	// the collapsed step was never re-confirmed
	assert.Equal(t, StatusPending, w.Status(StepMount))
	assert.False(t, w.Done())
}

func TestWizard_ReopenWhileAnotherStepIsOpen(t *testing.T) {
	w := New(catalog.DefaultShapes())
	confirm(t, w, StepShape)
	confirm(t, w, StepDimensions)
	assert.Equal(t, StatusOpen, w.Status(StepShadeType))

	require.NoError(t, w.Reopen(StepShape))
	assert.Equal(t, StatusOpen, w.Status(StepShape))
	assert.Equal(t, StatusPending, w.Status(StepShadeType))
	assert.Equal(t, StatusHidden, w.Status(StepFabric))

	var pending int
	for _, v := range w.View() {
		if v.Status == StatusPending {
			pending++
			assert.Empty(t, v.Summary)
		}
	}
	assert.Equal(t, 1, pending)

	// the collapsed step can be opened directly and is next after confirming
	require.NoError(t, w.Reopen(StepShadeType))
	assert.Equal(t, StatusPending, w.Status(StepShape))
	require.NoError(t, w.Reopen(StepShape))
	assert.Equal(t, StepShadeType, confirm(t, w, StepShape))
	assert.ErrorIs(t, w.Reopen(StepFabric), ErrStepHidden)
}

func TestWizard_ReopenClearsCompletedAndConfirmAdvances(t *testing.T) {
	w := New(catalog.DefaultShapes())
	completeAll(t, w)

	require.NoError(t, w.Reopen(StepFabric))
	assert.Equal(t, StatusOpen, w.Status(StepFabric))

	_, ok, err := w.Confirm(StepFabric)
	require.NoError(t, err)
	assert.False(t, ok, "all other steps are complete so the wizard closes")
	assert.True(t, w.Done())

	// reopen two steps; confirming the later one wraps to the earlier one
	require.NoError(t, w.Reopen(StepShape))
	require.NoError(t, w.Reopen(StepQuantity))
	assert.Equal(t, StepShape, confirm(t, w, StepQuantity))
}

func TestWizard_HiddenStepsCannotBeOpened(t *testing.T) {
	w := New(catalog.DefaultShapes())

	assert.ErrorIs(t, w.Reopen(StepControl), ErrStepHidden)
	assert.ErrorIs(t, w.Reopen("colour"), ErrUnknownStep)

	err := w.Edit(StepFabric, func(c models.ShadeConfiguration) models.ShadeConfiguration { return c })
	assert.ErrorIs(t, err, ErrNotOpen)

	_, _, err = w.Confirm(StepFabric)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestWizard_ReconfirmIsIdempotent(t *testing.T) {
	w := New(catalog.DefaultShapes())
	completeAll(t, w)
	before := w.Config()

	_, _, err := w.Confirm(StepMount)
	require.NoError(t, err)
	assert.Equal(t, before, w.Config())

	require.NoError(t, w.Reopen(StepDimensions))
	confirm(t, w, StepDimensions)

	assert.Equal(t, before, w.Config())
	assert.True(t, w.Done())
}

func TestWizard_ShapeChangeMotorizesAndDropsFields(t *testing.T) {
	w := New(catalog.DefaultShapes())
	completeAll(t, w)
	require.Equal(t, models.ControlMetalChain, w.Config().ControlType())

	require.NoError(t, w.Reopen(StepShape))
	require.NoError(t, w.Edit(StepShape, func(c models.ShadeConfiguration) models.ShadeConfiguration {
		return c.WithShape(models.ShapeRightTriangleLeft)
	}))
	assert.Equal(t, models.ControlMotorized, w.Config().ControlType())

	confirm(t, w, StepShape)
	assert.Equal(t, []string{"width"}, w.Config().Measurements.Keys())
}

func TestResume_StartsClosed(t *testing.T) {
	cfg := models.NewConfiguration().WithFabric(linen).WithQuantity(0)
	w := Resume(catalog.DefaultShapes(), cfg)

	assert.True(t, w.Done())
	assert.Equal(t, 1, w.Config().Quantity)
	require.NoError(t, w.Reopen(StepQuantity))
}

func TestSummary(t *testing.T) {
	shapes := catalog.DefaultShapes()
	cfg := models.NewConfiguration().
		WithDimension("width", models.Inches(36, models.FractionThreeEighths)).
		WithDimension("height", models.Inches(60, "")).
		WithFabric(linen).
		WithQuantity(3)

	assert.Equal(t, "Standard", Summary(StepShape, cfg, shapes))
	assert.Equal(t, `36 3/8" × 60"`, Summary(StepDimensions, cfg, shapes))
	assert.Equal(t, "All fabrics", Summary(StepShadeType, cfg, shapes))
	assert.Equal(t, "Linen Natural (Group D)", Summary(StepFabric, cfg, shapes))
	assert.Equal(t, "Inside Mount", Summary(StepMount, cfg, shapes))
	assert.Equal(t, "Metal Chain", Summary(StepControl, cfg, shapes))
	assert.Equal(t, "No valance · No side channels", Summary(StepFinish, cfg, shapes))
	assert.Equal(t, "3 shades", Summary(StepQuantity, cfg, shapes))

	measured := cfg
	measured.ServicePath = models.ServiceMeasureAndInstall
	assert.Equal(t, "Professional measure & install", Summary(StepDimensions, measured, shapes))

	installOnly := cfg
	installOnly.ServicePath = models.ServiceInstallOnly
	assert.Equal(t, `36 3/8" × 60" + Professional install`, Summary(StepDimensions, installOnly, shapes))
}

func TestSummary_SpecialtyShapes(t *testing.T) {
	shapes := catalog.DefaultShapes()
	cfg := models.NewConfiguration().WithShape(models.ShapeRightTriangleRight).
		WithDimension("width", models.Inches(40, "")).
		WithDimension("rightHeight", models.Inches(30, models.FractionOneHalf))
	cfg = cfg.WithControl(models.Motorized{PowerSource: models.PowerSolar, Remote: true, SunSensor: true})

	assert.Equal(t, `Bottom Width 40", Right Height 30 1/2"`, Summary(StepDimensions, cfg, shapes))
	assert.Equal(t, "Motorized · Solar · Remote, Sun sensor", Summary(StepControl, cfg, shapes))
	assert.Equal(t, "Right Triangle (Right)", Summary(StepShape, cfg, shapes))
}
