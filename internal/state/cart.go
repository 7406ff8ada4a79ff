package state

import (
	"sync"

	"github.com/danishansari-dev/scrunchcreate/internal/models"
)

const cartSlot = "cart"

// Cart holds a visitor's cart lines. Identity is the product id: adding the
// same id twice merges by summing quantity, and no line ever drops below
// quantity 1 except by removal.
type Cart struct {
	mu    sync.Mutex
	kv    KV
	scope string
	items []models.CartItem
	subs  subscribers
}

// NewCart rehydrates a cart from its persisted slot. Missing or malformed
// snapshots degrade to an empty cart.
func NewCart(kv KV, scope string) *Cart {
	c := &Cart{kv: kv, scope: scope}
	loadSlot(kv, scope, cartSlot, &c.items)
	return c
}

// Add merges qty into an existing line for the same id or appends a new
// line. Quantities below 1 count as 1.
func (c *Cart) Add(item models.CartItem, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Qty += qty
			c.persist()
			return
		}
	}
	item.Qty = qty
	c.items = append(c.items, item)
	c.persist()
}

// SetQuantity clamps to a minimum of 1; removal is explicit via Remove.
func (c *Cart) SetQuantity(id string, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Qty = qty
			c.persist()
			return
		}
	}
}

func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persist()
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the summed quantity across lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Qty
	}
	return total
}

// Subtotal is sum(price * qty) in whole rupees.
func (c *Cart) Subtotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Price * it.Qty
	}
	return total
}

// Subscribe registers an observer called after every mutation. Returns an
// unsubscribe func.
func (c *Cart) Subscribe(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subs.add(fn)
}

// persist must run with the lock held.
func (c *Cart) persist() {
	saveSlot(c.kv, c.scope, cartSlot, c.items)
	c.subs.notify()
}
