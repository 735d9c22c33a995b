package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog resolves a table name to its layout.
type Catalog interface {
	Lookup(name string) (*Schema, bool)
}

// MapCatalog is an in-memory Catalog. Lookup prefers an exact name match and
// falls back to a case-insensitive one. A MapCatalog is read-only once built
// and safe for concurrent readers.
type MapCatalog struct {
	byName  map[string]*Schema
	byLower map[string]*Schema
}

// NewCatalog indexes schemas by name. Two schemas with the same exact name
// are an error; names that only differ by case are both kept, and the first
// one wins the case-insensitive fallback.
func NewCatalog(schemas ...*Schema) (*MapCatalog, error) {
	c := &MapCatalog{
		byName:  make(map[string]*Schema, len(schemas)),
		byLower: make(map[string]*Schema, len(schemas)),
	}
	for _, s := range schemas {
		if s == nil {
			continue
		}
		if _, ok := c.byName[s.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTable, s.Name)
		}
		c.byName[s.Name] = s
		lower := strings.ToLower(s.Name)
		if _, ok := c.byLower[lower]; !ok {
			c.byLower[lower] = s
		}
	}
	return c, nil
}

func (c *MapCatalog) Lookup(name string) (*Schema, bool) {
	if c == nil {
		return nil, false
	}
	if s, ok := c.byName[name]; ok {
		return s, true
	}
	s, ok := c.byLower[strings.ToLower(name)]
	return s, ok
}

// Names returns the exact table names in sorted order.
func (c *MapCatalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len is the number of schemas in the catalog.
func (c *MapCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byName)
}

// Chain consults each catalog in order and returns the first hit. Nil
// entries are skipped.
type Chain []Catalog

func (ch Chain) Lookup(name string) (*Schema, bool) {
	for _, c := range ch {
		if c == nil {
			continue
		}
		if s, ok := c.Lookup(name); ok {
			return s, true
		}
	}
	return nil, false
}
