// Package store holds the process-wide state containers of the storefront:
// the shopping cart and the authenticated session. Both persist a full
// snapshot on every mutation and notify subscribers after each transition.
package store

import (
	"encoding/json"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/model"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/storage"
)

// CartBlob names the persisted cart snapshot.
const CartBlob = "loja-ia-cart"

type cartSnapshot struct {
	Items  []model.CartItem `json:"items"`
	IsOpen bool             `json:"isOpen"`
}

// Cart is the shopping cart container. Items keep first-added order; adding
// an already-present product merges into its quantity in place.
type Cart struct {
	baseContainer
	items  []model.CartItem
	isOpen bool
}

// NewCart returns a cart hydrated from st when a snapshot exists. A corrupt
// snapshot is discarded and the cart starts empty.
func NewCart(st storage.Storage) *Cart {
	c := &Cart{baseContainer: newBaseContainer(st, CartBlob)}
	data, ok, err := st.Load(CartBlob)
	if err != nil {
		obs.Logger.Warn("cart_hydrate_failed", "error", err)
		return c
	}
	if !ok {
		return c
	}
	var snap cartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		obs.Logger.Warn("cart_snapshot_corrupt", "error", err)
		return c
	}
	c.items = snap.Items
	c.isOpen = snap.IsOpen
	return c
}

// AddItem increments the quantity of an existing line for the same product,
// preserving its position, or appends a new line with quantity 1.
func (c *Cart) AddItem(p model.CartProduct) {
	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, model.CartItem{Product: p, Quantity: 1})
	}
	c.persistLocked(c.snapshotLocked())
	subs := c.subscribersLocked()
	c.mu.Unlock()
	notify(subs)
}

// RemoveItem decrements the quantity of the matching line, deleting it at
// quantity 1. An unknown product ID is a no-op.
func (c *Cart) RemoveItem(productID int64) {
	c.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	if c.items[idx].Quantity <= 1 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	} else {
		c.items[idx].Quantity--
	}
	c.persistLocked(c.snapshotLocked())
	subs := c.subscribersLocked()
	c.mu.Unlock()
	notify(subs)
}

// ClearCart empties the item list. The open flag is untouched.
func (c *Cart) ClearCart() {
	c.mu.Lock()
	c.items = nil
	c.persistLocked(c.snapshotLocked())
	subs := c.subscribersLocked()
	c.mu.Unlock()
	notify(subs)
}

// ToggleCart flips the panel visibility flag.
func (c *Cart) ToggleCart() {
	c.mu.Lock()
	c.isOpen = !c.isOpen
	c.persistLocked(c.snapshotLocked())
	subs := c.subscribersLocked()
	c.mu.Unlock()
	notify(subs)
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// IsOpen reports the panel visibility flag.
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// Count returns the total quantity across all lines, for the navbar badge.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) snapshotLocked() any {
	return cartSnapshot{Items: c.items, IsOpen: c.isOpen}
}
