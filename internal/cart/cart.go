// Package cart implements the session-scoped shopping cart: an ordered
// list of line items with price snapshots taken at add time.
package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrIndexOutOfRange = errors.New("cart index out of range")

// Item snapshots a product at the moment it was added. Later catalog
// price changes never touch items already in a cart.
type Item struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// Cart is the ordered list of line items for one session. Adding the
// same product twice yields two line items; there is no upper bound.
// All mutations are serialized so rapid interactions cannot corrupt the
// item sequence.
type Cart struct {
	mu       sync.Mutex
	items    []Item
	onChange []func(count int)
}

func New() *Cart { return &Cart{} }

// OnChange registers fn to run with the new item count after every
// mutation. This is how the displayed cart badge stays current.
func (c *Cart) OnChange(fn func(count int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// Add appends a line-item snapshot to the end of the cart.
func (c *Cart) Add(productID, name string, price decimal.Decimal) {
	c.mu.Lock()
	c.items = append(c.items, Item{ProductID: productID, Name: name, Price: price})
	c.notifyLocked()
}

// RemoveAt deletes the item at position i and shifts the remaining items
// left, preserving their relative order. The cart is left unmodified
// when i is outside [0, len).
func (c *Cart) RemoveAt(i int) (Item, error) {
	c.mu.Lock()
	if i < 0 || i >= len(c.items) {
		c.mu.Unlock()
		return Item{}, ErrIndexOutOfRange
	}
	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.notifyLocked()
	return removed, nil
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.notifyLocked()
}

// Total is the exact decimal sum of all item prices, zero for an empty
// cart.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price)
	}
	return total
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Items returns a copy of the current line items in display order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

// notifyLocked releases the lock and fires the change callbacks, so a
// callback may call back into the cart.
func (c *Cart) notifyLocked() {
	count := len(c.items)
	fns := append([]func(int)(nil), c.onChange...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(count)
	}
}
