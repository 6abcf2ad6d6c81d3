package rules

import (
	"strings"

	"github.com/KirkDiggler/petbot/internal/entities"
)

// Catalog resolves item ids and aliases
type Catalog struct {
	items   []entities.Item
	byID    map[string]int
	byAlias map[string]int
}

// NewCatalog indexes items by id and by lower-cased alias.
// The first item wins when two share an alias; Validate reports the clash.
func NewCatalog(items []entities.Item) *Catalog {
	c := &Catalog{
		items:   items,
		byID:    make(map[string]int, len(items)),
		byAlias: make(map[string]int),
	}
	for i, item := range items {
		if _, dup := c.byID[item.ID]; !dup {
			c.byID[item.ID] = i
		}
		for _, name := range append([]string{item.ID}, item.Aliases...) {
			key := normalize(name)
			if _, dup := c.byAlias[key]; !dup {
				c.byAlias[key] = i
			}
		}
	}
	return c
}

// Get returns the item with the given id
func (c *Catalog) Get(id string) (*entities.Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// Resolve looks up a player-typed item name by id or alias, ignoring case
func (c *Catalog) Resolve(name string) (*entities.Item, bool) {
	i, ok := c.byAlias[normalize(name)]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// DisplayName returns the item's name, falling back to the id for unknown items
func (c *Catalog) DisplayName(id string) string {
	if item, ok := c.Get(id); ok && item.Name != "" {
		return item.Name
	}
	return id
}

// WithCapability lists the ids of items that have the capability, in catalog order
func (c *Catalog) WithCapability(capability entities.Capability) []string {
	var ids []string
	for i := range c.items {
		if c.items[i].Can(capability) {
			ids = append(ids, c.items[i].ID)
		}
	}
	return ids
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
