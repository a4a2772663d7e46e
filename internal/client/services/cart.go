package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/eduroot/storefront/internal/client/models"
	"github.com/eduroot/storefront/internal/client/store"
	"github.com/eduroot/storefront/internal/logging"
	"github.com/eduroot/storefront/internal/observe"
)

// Cart is an immutable snapshot of the cart.
type Cart struct {
	Items []models.CartItem
	Total float64
	Count int
}

func newCart(items []models.CartItem) Cart {
	return Cart{
		Items: cloneItems(items),
		Total: total(items),
		Count: count(items),
	}
}

// CartService holds the ordered, id-deduplicated list of items the user
// intends to buy. Every mutation is written to the store before it becomes
// visible; a failed write leaves the cart as it was.
type CartService struct {
	store  store.Store
	logger logging.Logger
	hub    *observe.Hub[Cart]

	mu    sync.Mutex
	items []models.CartItem
}

// NewCartService returns an empty cart backed by st. Call Load to read the
// stored snapshot.
func NewCartService(st store.Store, logger logging.Logger) *CartService {
	return &CartService{
		store:  st,
		logger: logger.With("component", "cart"),
		hub:    observe.NewHub[Cart](),
		items:  []models.CartItem{},
	}
}

// Load replaces the in-memory cart with the stored snapshot. A missing or
// unreadable snapshot yields an empty cart.
func (c *CartService) Load(ctx context.Context) error {
	raw, ok, err := c.store.Get(ctx, store.KeyCart)
	if err != nil {
		c.logger.Error(ctx, "reading stored cart failed", "error", err)
		c.replace([]models.CartItem{})
		return fmt.Errorf("load cart: %w", err)
	}

	items := []models.CartItem{}
	if ok {
		items, err = decodeCart(raw)
		if err != nil {
			c.logger.Warn(ctx, "stored cart is corrupt, starting empty", "error", err)
			items = []models.CartItem{}
		}
	}
	items, dropped := normalizeItems(items)
	if dropped > 0 {
		c.logger.Warn(ctx, "stored cart had invalid or duplicate entries", "dropped", dropped)
	}
	c.replace(items)
	return nil
}

func (c *CartService) replace(items []models.CartItem) {
	c.mu.Lock()
	c.items = items
	snap := newCart(items)
	c.mu.Unlock()

	c.hub.Publish(snap)
}

func decodeCart(raw string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// normalizeItems drops entries without an id or with a non-positive
// quantity and folds duplicate ids into the first occurrence. It returns
// how many entries were dropped or folded.
func normalizeItems(items []models.CartItem) ([]models.CartItem, int) {
	out := make([]models.CartItem, 0, len(items))
	dropped := 0
	for _, it := range items {
		if it.ID == "" || it.Quantity <= 0 {
			dropped++
			continue
		}
		if i := indexOf(out, it.ID); i >= 0 {
			out[i].Quantity += it.Quantity
			dropped++
			continue
		}
		out = append(out, it)
	}
	return out, dropped
}

// Add puts one unit of item into the cart. If an item with the same id is
// already there only its quantity grows; its other fields are kept from
// the first add.
func (c *CartService) Add(ctx context.Context, item models.CartItem) error {
	if item.ID == "" {
		return ErrInvalidItem
	}
	return c.mutate(ctx, "add", func(items []models.CartItem) []models.CartItem {
		if i := indexOf(items, item.ID); i >= 0 {
			items[i].Quantity++
			return items
		}
		added := item.Clone()
		added.Quantity = 1
		return append(items, added)
	})
}

// Remove drops the item with id. Removing an absent id is not an error.
func (c *CartService) Remove(ctx context.Context, id string) error {
	return c.mutate(ctx, "remove", func(items []models.CartItem) []models.CartItem {
		return slices.DeleteFunc(items, func(it models.CartItem) bool { return it.ID == id })
	})
}

// UpdateQuantity sets the quantity of id. A quantity of zero or less
// removes the item; an absent id is left absent.
func (c *CartService) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(ctx, id)
	}
	return c.mutate(ctx, "update quantity", func(items []models.CartItem) []models.CartItem {
		if i := indexOf(items, id); i >= 0 {
			items[i].Quantity = quantity
		}
		return items
	})
}

// Clear empties the cart and deletes the stored snapshot.
func (c *CartService) Clear(ctx context.Context) error {
	c.mu.Lock()
	if err := c.store.Delete(ctx, store.KeyCart); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("clear cart: %w", err)
	}
	c.items = []models.CartItem{}
	snap := newCart(c.items)
	c.mu.Unlock()

	c.hub.Publish(snap)
	return nil
}

// mutate applies fn to a copy of the items, persists the result and only
// then swaps it in.
func (c *CartService) mutate(ctx context.Context, op string, fn func([]models.CartItem) []models.CartItem) error {
	c.mu.Lock()
	next := fn(cloneItems(c.items))

	raw, err := json.Marshal(next)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%s: encode cart: %w", op, err)
	}
	if err := c.store.Set(ctx, store.KeyCart, string(raw)); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%s: persist cart: %w", op, err)
	}
	c.items = next
	snap := newCart(next)
	c.mu.Unlock()

	c.hub.Publish(snap)
	return nil
}

// Snapshot returns the current cart.
func (c *CartService) Snapshot() Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return newCart(c.items)
}

// Items returns a copy of the items in insertion order.
func (c *CartService) Items() []models.CartItem { return c.Snapshot().Items }

// Total is the sum of price × quantity over all items; 0 for an empty cart.
func (c *CartService) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.items)
}

// Count is the number of units in the cart.
func (c *CartService) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return count(c.items)
}

// OrderRequest builds the order payload for the current cart. An empty
// currency means models.DefaultCurrency.
func (c *CartService) OrderRequest(currency string) models.OrderRequest {
	if currency == "" {
		currency = models.DefaultCurrency
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	req := models.OrderRequest{
		Amount:   total(c.items),
		Currency: currency,
		Items:    make([]models.OrderItem, 0, len(c.items)),
	}
	for _, it := range c.items {
		req.Items = append(req.Items, models.OrderItem{
			ID:       it.ID,
			Title:    it.Title,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return req
}

// Subscribe registers fn for every published cart snapshot.
func (c *CartService) Subscribe(fn func(Cart)) (unsubscribe func()) {
	return c.hub.Subscribe(fn)
}

// Close drops all subscribers.
func (c *CartService) Close() {
	c.hub.Close()
}

func indexOf(items []models.CartItem, id string) int {
	return slices.IndexFunc(items, func(it models.CartItem) bool { return it.ID == id })
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func total(items []models.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

func count(items []models.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
