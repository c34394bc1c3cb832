package ability

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyID         = errors.New("ability: empty id")
	ErrNilFactory      = errors.New("ability: nil factory")
	ErrUnknownSlot     = errors.New("ability: unknown slot")
	ErrNilCatalog      = errors.New("ability: nil catalog")
	ErrNilCapabilities = errors.New("ability: nil capabilities")
)

// Catalog holds every ability that can be equipped, keyed by id.
type Catalog struct {
	descs map[string]Descriptor
	order []string
}

func NewCatalog() *Catalog {
	return &Catalog{descs: map[string]Descriptor{}}
}

// Register inserts or replaces the descriptor for d.ID. Replacing keeps the
// first registration position.
func (c *Catalog) Register(d Descriptor) error {
	d.ID = strings.TrimSpace(d.ID)
	if d.ID == "" {
		return ErrEmptyID
	}
	if d.New == nil {
		return fmt.Errorf("register %q: %w", d.ID, ErrNilFactory)
	}
	if !d.Slot.Valid() {
		return fmt.Errorf("register %q slot %q: %w", d.ID, d.Slot, ErrUnknownSlot)
	}
	if d.Name == "" {
		d.Name = d.ID
	}
	if _, ok := c.descs[d.ID]; !ok {
		c.order = append(c.order, d.ID)
	}
	c.descs[d.ID] = d
	return nil
}

func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	d, ok := c.descs[id]
	return d, ok
}

// Descriptors returns every entry in registration order.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.descs[id])
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }
