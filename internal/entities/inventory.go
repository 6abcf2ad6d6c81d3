package entities

import (
	"sort"

	"github.com/KirkDiggler/petbot/internal/errors"
)

// Inventory maps item ids to strictly positive quantities.
// Entries are deleted when they reach zero, never stored as zero.
type Inventory map[string]int

// InventoryEntry is one line of a sorted inventory listing
type InventoryEntry struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// NewInventory returns an empty inventory
func NewInventory() Inventory {
	return make(Inventory)
}

// Add increases the quantity of item by qty
func (inv Inventory) Add(item string, qty int) error {
	if item == "" {
		return errors.InvalidArgument("item is required")
	}
	if qty < 1 {
		return errors.InvalidArgumentf("quantity must be at least 1, got %d", qty)
	}
	inv[item] += qty
	return nil
}

// Remove takes qty of item out of the inventory.
// It returns false and leaves the inventory untouched when fewer than qty are held.
func (inv Inventory) Remove(item string, qty int) bool {
	if qty < 1 {
		return false
	}
	held := inv[item]
	if held < qty {
		return false
	}
	if held == qty {
		delete(inv, item)
		return true
	}
	inv[item] = held - qty
	return true
}

// Quantity returns how many of item are held
func (inv Inventory) Quantity(item string) int {
	return inv[item]
}

// TransferAll moves every item into to and returns what was moved.
// Each entry is removed from inv before it is added to to.
func (inv Inventory) TransferAll(to Inventory) map[string]int {
	moved := make(map[string]int, len(inv))
	for _, entry := range inv.Items() {
		if !inv.Remove(entry.Item, entry.Quantity) {
			continue
		}
		to[entry.Item] += entry.Quantity
		moved[entry.Item] = entry.Quantity
	}
	return moved
}

// Clear empties the inventory and returns what was dropped
func (inv Inventory) Clear() map[string]int {
	dropped := make(map[string]int, len(inv))
	for item, qty := range inv {
		dropped[item] = qty
		delete(inv, item)
	}
	return dropped
}

// Items lists entries sorted by item id
func (inv Inventory) Items() []InventoryEntry {
	entries := make([]InventoryEntry, 0, len(inv))
	for item, qty := range inv {
		if qty > 0 {
			entries = append(entries, InventoryEntry{Item: item, Quantity: qty})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Item < entries[j].Item
	})
	return entries
}

// Clone returns an independent copy
func (inv Inventory) Clone() Inventory {
	c := make(Inventory, len(inv))
	for item, qty := range inv {
		c[item] = qty
	}
	return c
}

// Delta returns the per-item change from before to inv, omitting unchanged items
func (inv Inventory) Delta(before Inventory) map[string]int {
	delta := make(map[string]int)
	for item, qty := range inv {
		if d := qty - before[item]; d != 0 {
			delta[item] = d
		}
	}
	for item, qty := range before {
		if _, ok := inv[item]; !ok {
			delta[item] = -qty
		}
	}
	return delta
}
