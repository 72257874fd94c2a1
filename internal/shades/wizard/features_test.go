package wizard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"

	"github.com/cucumber/godog"
)

type wizardTestContext struct {
	wizard   *Wizard
	snapshot models.ShadeConfiguration
	err      error
}

func (c *wizardTestContext) reset() {
	c.wizard = nil
	c.snapshot = models.ShadeConfiguration{}
	c.err = nil
}

func (c *wizardTestContext) aNewConfigurator() error {
	c.wizard = New(catalog.DefaultShapes())
	return nil
}

func (c *wizardTestContext) everyStepIsConfirmed() error {
	edits := map[Step]func(models.ShadeConfiguration) models.ShadeConfiguration{
		StepDimensions: func(cfg models.ShadeConfiguration) models.ShadeConfiguration {
			return cfg.WithDimension("width", models.Inches(36, "")).WithDimension("height", models.Inches(60, ""))
		},
		StepFabric: func(cfg models.ShadeConfiguration) models.ShadeConfiguration {
			return cfg.WithFabric(models.Fabric{ID: "fab-bdd", Name: "BDD Fabric", PriceGroup: "C"})
		},
	}
	for _, s := range Steps {
		if fn, ok := edits[s]; ok {
			if err := c.wizard.Edit(s, fn); err != nil {
				return err
			}
		}
		if _, _, err := c.wizard.Confirm(s); err != nil {
			return err
		}
	}
	if !c.wizard.Done() {
		return fmt.Errorf("configurator still open")
	}
	c.snapshot = c.wizard.Config()
	return nil
}

func (c *wizardTestContext) iConfirm(step string) error {
	_, _, err := c.wizard.Confirm(Step(step))
	return err
}

func (c *wizardTestContext) iReopen(step string) error {
	return c.wizard.Reopen(Step(step))
}

func (c *wizardTestContext) iTryToReopen(step string) error {
	c.err = c.wizard.Reopen(Step(step))
	return nil
}

func (c *wizardTestContext) iSetTheDimension(key string, whole int, fraction string) error {
	step, _ := c.wizard.Current()
	return c.wizard.Edit(step, func(cfg models.ShadeConfiguration) models.ShadeConfiguration {
		return cfg.WithDimension(key, models.Inches(float64(whole), models.Fraction(fraction)))
	})
}

func (c *wizardTestContext) theOpenStepIs(step string) error {
	open, ok := c.wizard.Current()
	if !ok || open != Step(step) {
		return fmt.Errorf("expected open step %s, got %q", step, open)
	}
	return nil
}

func (c *wizardTestContext) theStepIs(step, status string) error {
	if got := c.wizard.Status(Step(step)); got != Status(status) {
		return fmt.Errorf("expected %s to be %s, got %s", step, status, got)
	}
	return nil
}

func (c *wizardTestContext) theStepCannotBeOpened() error {
	if !errors.Is(c.err, ErrStepHidden) {
		return fmt.Errorf("expected ErrStepHidden, got %v", c.err)
	}
	return nil
}

func (c *wizardTestContext) theConfiguratorIsClosed() error {
	if !c.wizard.Done() {
		return fmt.Errorf("configurator is still open")
	}
	return nil
}

func (c *wizardTestContext) theConfigurationIsUnchanged() error {
	if !reflect.DeepEqual(c.snapshot, c.wizard.Config()) {
		return fmt.Errorf("configuration changed: %+v != %+v", c.snapshot, c.wizard.Config())
	}
	return nil
}

func (c *wizardTestContext) theSummaryIs(step, expected string) error {
	for _, v := range c.wizard.View() {
		if v.Step == Step(step) {
			if v.Summary != expected {
				return fmt.Errorf("expected summary %q, got %q", expected, v.Summary)
			}
			return nil
		}
	}
	return fmt.Errorf("no step %s", step)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &wizardTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a new configurator$`, tc.aNewConfigurator)
	ctx.Step(`^every step is confirmed$`, tc.everyStepIsConfirmed)

	// When steps
	ctx.Step(`^I confirm "([^"]*)"$`, tc.iConfirm)
	ctx.Step(`^I reopen "([^"]*)"$`, tc.iReopen)
	ctx.Step(`^I try to reopen "([^"]*)"$`, tc.iTryToReopen)
	ctx.Step(`^I set the "([^"]*)" to (\d+) and ([0-9/]+) inches$`, tc.iSetTheDimension)

	// Then steps
	ctx.Step(`^the open step is "([^"]*)"$`, tc.theOpenStepIs)
	ctx.Step(`^the step "([^"]*)" is "([^"]*)"$`, tc.theStepIs)
	ctx.Step(`^the step cannot be opened$`, tc.theStepCannotBeOpened)
	ctx.Step(`^the configurator is closed$`, tc.theConfiguratorIsClosed)
	ctx.Step(`^the configuration is unchanged$`, tc.theConfigurationIsUnchanged)
	ctx.Step(`^the "([^"]*)" summary is "(.*)"$`, tc.theSummaryIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/wizard.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
