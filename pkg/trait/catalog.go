// SPDX-License-Identifier: MPL-2.0

package trait

import (
	"slices"
	"sync"
)

// Catalog is a name-keyed set of traits. Adding a trait whose name is
// already present succeeds only if the two declarations are identical.
type Catalog struct {
	mu     sync.RWMutex
	traits map[string]*Trait
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{traits: make(map[string]*Trait)}
}

// Add registers t. Redeclaring an identical trait is a no-op; redeclaring a
// name with a different member list returns a TraitConflictError.
func (c *Catalog) Add(t *Trait) error {
	if t == nil {
		return ErrNilTrait
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.traits[t.name]; ok {
		if existing.Equal(t) {
			return nil
		}
		return &TraitConflictError{Name: t.name}
	}
	c.traits[t.name] = t
	return nil
}

// Lookup returns the trait registered under name.
func (c *Catalog) Lookup(name string) (*Trait, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.traits[name]
	return t, ok
}

// Names returns the registered trait names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.traits))
	for name := range c.traits {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered traits.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.traits)
}
