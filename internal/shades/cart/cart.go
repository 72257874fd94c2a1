package cart

import (
	"errors"
	"time"

	"shade-store/internal/shades/models"
	"shade-store/internal/shades/pricing"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
	ErrIncomplete   = errors.New("configuration is not complete")
)

// Pricer is the part of the pricing engine the cart needs.
type Pricer interface {
	Price(cfg models.ShadeConfiguration) pricing.Quote
	CartTotals(lineTotals []float64) pricing.CartTotals
}

// ============================================================
// Cart
// ============================================================

// Cart is the ordered list of priced items for one shopper. Items are
// snapshots: changing a configuration means replacing the item.
type Cart struct {
	pricer Pricer
	items  []models.CartItem
	now    func() time.Time
}

func New(pricer Pricer) *Cart {
	return &Cart{pricer: pricer, now: time.Now}
}

// Restore rebuilds a cart from stored items without re-pricing them.
func Restore(pricer Pricer, items []models.CartItem) *Cart {
	c := New(pricer)
	c.items = append(c.items, items...)
	return c
}

// Add prices cfg and appends it as a new item.
func (c *Cart) Add(cfg models.ShadeConfiguration) (models.CartItem, error) {
	item, err := c.freeze(cfg)
	if err != nil {
		return models.CartItem{}, err
	}
	item.ID = uuid.NewString()
	item.CreatedAt = c.now().UTC()

	c.items = append(c.items, item)
	return item, nil
}

// Replace re-prices cfg into the item with the given id. The item keeps its
// id, position and creation time.
func (c *Cart) Replace(id string, cfg models.ShadeConfiguration) (models.CartItem, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return models.CartItem{}, ErrItemNotFound
	}

	item, err := c.freeze(cfg)
	if err != nil {
		return models.CartItem{}, err
	}
	item.ID = id
	item.CreatedAt = c.items[idx].CreatedAt

	c.items[idx] = item
	return item, nil
}

func (c *Cart) Remove(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Get(id string) (models.CartItem, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return models.CartItem{}, false
	}
	return c.items[idx], true
}

// Items returns a copy of the items in the order they were added.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Totals sums the line totals and applies the bulk discount.
func (c *Cart) Totals() pricing.CartTotals {
	lines := make([]float64, len(c.items))
	for i, item := range c.items {
		lines[i] = item.TotalPrice
	}
	return c.pricer.CartTotals(lines)
}

func (c *Cart) freeze(cfg models.ShadeConfiguration) (models.CartItem, error) {
	quote := c.pricer.Price(cfg)
	if quote.Incomplete {
		return models.CartItem{}, ErrIncomplete
	}

	cfg.Control = cfg.EffectiveControl()
	cfg.Quantity = quote.Quantity
	return models.CartItem{
		Config:       cfg,
		UnitPrice:    quote.UnitPrice,
		InstallerFee: quote.InstallerCost,
		TotalPrice:   quote.Total,
	}, nil
}

func (c *Cart) indexOf(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
