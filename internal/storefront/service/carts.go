package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shade-store/internal/shades/cart"
	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
	"shade-store/internal/shades/pricing"
	"shade-store/internal/storefront/repository"

	"github.com/google/uuid"
)

var ErrCartNotFound = errors.New("cart not found")

// CartStore persists cart sessions.
type CartStore interface {
	LoadCart(ctx context.Context, id string) ([]models.CartItem, error)
	SaveCart(ctx context.Context, id string, items []models.CartItem) error
	DeleteCart(ctx context.Context, id string) error
}

// CartView is a cart as the storefront shows it.
type CartView struct {
	ID     string             `json:"id"`
	Items  []models.CartItem  `json:"items"`
	Totals pricing.CartTotals `json:"totals"`
}

// ============================================================
// Cart Sessions
// ============================================================

// CartService loads a cart session, applies one change and stores it again.
// Changes to the same process are serialized.
type CartService struct {
	mu       sync.Mutex
	store    CartStore
	pricer   cart.Pricer
	resolver *Resolver
	shapes   *catalog.Shapes
}

func NewCartService(store CartStore, pricer cart.Pricer, resolver *Resolver, shapes *catalog.Shapes) *CartService {
	return &CartService{store: store, pricer: pricer, resolver: resolver, shapes: shapes}
}

// Create starts an empty cart session.
func (s *CartService) Create(ctx context.Context) (CartView, error) {
	id := uuid.NewString()
	if err := s.store.SaveCart(ctx, id, nil); err != nil {
		return CartView{}, fmt.Errorf("create cart: %w", err)
	}
	return s.view(id, cart.New(s.pricer)), nil
}

func (s *CartService) Get(ctx context.Context, id string) (CartView, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return CartView{}, err
	}
	return s.view(id, c), nil
}

// Add resolves and prices cfg, then appends it.
func (s *CartService) Add(ctx context.Context, id string, cfg models.ShadeConfiguration) (CartView, models.CartItem, error) {
	cfg, err := s.resolver.Resolve(ctx, cfg)
	if err != nil {
		return CartView{}, models.CartItem{}, err
	}

	var item models.CartItem
	view, err := s.update(ctx, id, func(c *cart.Cart) (err error) {
		item, err = c.Add(cfg)
		return err
	})
	return view, item, err
}

// Replace re-prices an existing item with a new configuration.
func (s *CartService) Replace(ctx context.Context, id, itemID string, cfg models.ShadeConfiguration) (CartView, models.CartItem, error) {
	cfg, err := s.resolver.Resolve(ctx, cfg)
	if err != nil {
		return CartView{}, models.CartItem{}, err
	}

	var item models.CartItem
	view, err := s.update(ctx, id, func(c *cart.Cart) (err error) {
		item, err = c.Replace(itemID, cfg)
		return err
	})
	return view, item, err
}

func (s *CartService) Remove(ctx context.Context, id, itemID string) (CartView, error) {
	return s.update(ctx, id, func(c *cart.Cart) error {
		return c.Remove(itemID)
	})
}

func (s *CartService) Clear(ctx context.Context, id string) (CartView, error) {
	return s.update(ctx, id, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// Item returns one stored item, e.g. to reopen it in the configurator.
func (s *CartService) Item(ctx context.Context, id, itemID string) (models.CartItem, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return models.CartItem{}, err
	}
	item, ok := c.Get(itemID)
	if !ok {
		return models.CartItem{}, cart.ErrItemNotFound
	}
	return item, nil
}

// Order assembles the checkout order for a cart.
func (s *CartService) Order(ctx context.Context, id string) (cart.Order, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return cart.Order{}, err
	}
	return cart.AssembleOrder(c.Items(), c.Totals(), s.shapes), nil
}

// Delete drops the session, e.g. after a completed checkout.
func (s *CartService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteCart(ctx, id)
}

func (s *CartService) update(ctx context.Context, id string, fn func(*cart.Cart) error) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx, id)
	if err != nil {
		return CartView{}, err
	}
	if err := fn(c); err != nil {
		return CartView{}, err
	}
	if err := s.store.SaveCart(ctx, id, c.Items()); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}
	return s.view(id, c), nil
}

func (s *CartService) load(ctx context.Context, id string) (*cart.Cart, error) {
	if id == "" {
		return nil, ErrCartNotFound
	}
	items, err := s.store.LoadCart(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart.Restore(s.pricer, items), nil
}

func (s *CartService) view(id string, c *cart.Cart) CartView {
	items := c.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	return CartView{ID: id, Items: items, Totals: c.Totals()}
}
