// Package relations declares which table columns hold the primary key of a
// row in another table.
//
// The graph is fixed reference data built once at init and never mutated.
// Columns expanded from an array carry a numeric suffix (Icon_0, Icon_1, ...)
// and share the relation declared on their unsuffixed base name.
package relations

import (
	"maps"
	"slices"
	"strings"
)

// Graph maps (table, field) to a target table. The zero value is an empty
// graph. A Graph is immutable and safe for concurrent readers.
type Graph struct {
	tables map[string]map[string]string
}

// NewGraph copies rels into a new Graph.
func NewGraph(rels map[string]map[string]string) *Graph {
	g := &Graph{tables: make(map[string]map[string]string, len(rels))}
	for table, fields := range rels {
		g.tables[table] = maps.Clone(fields)
	}
	return g
}

// Resolve returns the table that field of table points at. An exact field
// match wins; otherwise a trailing _<digits> is stripped and the base name
// is tried.
func (g *Graph) Resolve(table, field string) (string, bool) {
	if g == nil {
		return "", false
	}
	fields, ok := g.tables[table]
	if !ok {
		return "", false
	}
	if target, ok := fields[field]; ok {
		return target, true
	}
	if base, ok := arrayBase(field); ok {
		target, ok := fields[base]
		return target, ok
	}
	return "", false
}

// AllFor returns a copy of every relation declared on table.
func (g *Graph) AllFor(table string) map[string]string {
	if g == nil {
		return map[string]string{}
	}
	out := maps.Clone(g.tables[table])
	if out == nil {
		out = map[string]string{}
	}
	return out
}

// Tables lists every table that declares at least one relation, sorted.
func (g *Graph) Tables() []string {
	if g == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(g.tables))
}

// arrayBase strips a trailing _<digits> suffix.
func arrayBase(field string) (string, bool) {
	i := strings.LastIndexByte(field, '_')
	if i < 0 || i == len(field)-1 {
		return "", false
	}
	for _, c := range field[i+1:] {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return field[:i], true
}

var defaultGraph = NewGraph(wotlk)

// Default is the relation graph of the 3.3.5a client tables.
func Default() *Graph {
	return defaultGraph
}

// Resolve looks field up in the default graph.
func Resolve(table, field string) (string, bool) {
	return defaultGraph.Resolve(table, field)
}

// AllFor returns the default graph's relations for table.
func AllFor(table string) map[string]string {
	return defaultGraph.AllFor(table)
}
