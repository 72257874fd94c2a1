package service

import (
	"context"
	"errors"
	"sync"

	"shade-store/internal/shades/cart"
	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
	"shade-store/internal/shades/pricing"
	"shade-store/internal/shades/wizard"

	"github.com/google/uuid"
)

var ErrWizardNotFound = errors.New("configurator session not found")

// WizardView is the configurator state plus the live price.
type WizardView struct {
	ID      string                    `json:"id"`
	ItemID  string                    `json:"itemId,omitempty"`
	Steps   []wizard.StepView         `json:"steps"`
	Current wizard.Step               `json:"current,omitempty"`
	Done    bool                      `json:"done"`
	Config  models.ShadeConfiguration `json:"config"`
	Quote   pricing.Quote             `json:"quote"`
}

type wizardSession struct {
	mu     sync.Mutex
	wizard *wizard.Wizard
	itemID string
}

// ============================================================
// Wizard Sessions
// ============================================================

type WizardSessions struct {
	mu       sync.Mutex
	shapes   *catalog.Shapes
	pricer   cart.Pricer
	resolver *Resolver
	sessions map[string]*wizardSession
}

func NewWizardSessions(shapes *catalog.Shapes, pricer cart.Pricer, resolver *Resolver) *WizardSessions {
	return &WizardSessions{
		shapes:   shapes,
		pricer:   pricer,
		resolver: resolver,
		sessions: make(map[string]*wizardSession),
	}
}

// Start opens a fresh configurator on the shape step.
func (m *WizardSessions) Start() WizardView {
	return m.issue(&wizardSession{wizard: wizard.New(m.shapes)})
}

// Resume opens a closed configurator over an existing cart item.
func (m *WizardSessions) Resume(item models.CartItem) WizardView {
	return m.issue(&wizardSession{wizard: wizard.Resume(m.shapes, item.Config), itemID: item.ID})
}

func (m *WizardSessions) Get(id string) (WizardView, error) {
	s, ok := m.resolve(id)
	if !ok {
		return WizardView{}, ErrWizardNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return m.view(id, s), nil
}

// Edit replaces the configuration while step is open.
func (m *WizardSessions) Edit(ctx context.Context, id string, step wizard.Step, cfg models.ShadeConfiguration) (WizardView, error) {
	s, ok := m.resolve(id)
	if !ok {
		return WizardView{}, ErrWizardNotFound
	}
	cfg, err := m.resolver.Resolve(ctx, cfg)
	if err != nil {
		return WizardView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.wizard.Edit(step, func(models.ShadeConfiguration) models.ShadeConfiguration {
		return cfg
	})
	if err != nil {
		return WizardView{}, err
	}
	return m.view(id, s), nil
}

func (m *WizardSessions) Confirm(id string, step wizard.Step) (WizardView, error) {
	return m.with(id, func(w *wizard.Wizard) error {
		_, _, err := w.Confirm(step)
		return err
	})
}

func (m *WizardSessions) Reopen(id string, step wizard.Step) (WizardView, error) {
	return m.with(id, func(w *wizard.Wizard) error {
		return w.Reopen(step)
	})
}

func (m *WizardSessions) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *WizardSessions) issue(s *wizardSession) WizardView {
	m.mu.Lock()
	id := uuid.NewString()
	m.sessions[id] = s
	m.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return m.view(id, s)
}

func (m *WizardSessions) resolve(id string) (*wizardSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *WizardSessions) with(id string, fn func(*wizard.Wizard) error) (WizardView, error) {
	s, ok := m.resolve(id)
	if !ok {
		return WizardView{}, ErrWizardNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.wizard); err != nil {
		return WizardView{}, err
	}
	return m.view(id, s), nil
}

func (m *WizardSessions) view(id string, s *wizardSession) WizardView {
	cfg := s.wizard.Config()
	current, _ := s.wizard.Current()
	return WizardView{
		ID:      id,
		ItemID:  s.itemID,
		Steps:   s.wizard.View(),
		Current: current,
		Done:    s.wizard.Done(),
		Config:  cfg,
		Quote:   m.pricer.Price(cfg),
	}
}
