package dbccache

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultPreviewFields is the number of field lines Preview shows.
	DefaultPreviewFields = 6

	previewMaxLen    = 50
	previewKeepLen   = 47
	internalPrefix   = "_"
	primaryKeyColumn = "ID"
)

// FieldValue is one named raw column of an entry.
type FieldValue struct {
	Name  string `json:"name"`
	Value uint32 `json:"value"`
}

// Entry is a record viewed by column name. Values are the raw words; no
// column type is applied, so string columns hold pool offsets and float
// columns hold bit patterns.
type Entry struct {
	Table  string       `json:"table"`
	ID     uint32       `json:"id"`
	Fields []FieldValue `json:"fields"`
}

// Get returns the value stored under name.
func (e *Entry) Get(name string) (uint32, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

// Map returns the entry as a plain name to value map.
func (e *Entry) Map() map[string]uint32 {
	m := make(map[string]uint32, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// Lookup returns the entry of table name whose primary key is id. Column
// names come from the catalog by position; columns the schema does not
// cover are named Field{i}. When a schema repeats a name, the later column's
// value replaces the earlier one in place.
func (c *Cache) Lookup(name string, id uint32) (Entry, bool) {
	rec, ok := c.Record(name, id)
	if !ok {
		return Entry{}, false
	}
	s, _ := c.Schema(name)

	e := Entry{Table: name, ID: id, Fields: make([]FieldValue, 0, len(rec))}
	pos := make(map[string]int, len(rec))
	for i, v := range rec {
		field := s.FieldName(i)
		if at, dup := pos[field]; dup {
			e.Fields[at].Value = v
			continue
		}
		pos[field] = len(e.Fields)
		e.Fields = append(e.Fields, FieldValue{Name: field, Value: v})
	}
	return e, true
}

// Preview renders a short description of an entry for hover popups using
// DefaultPreviewFields.
func (c *Cache) Preview(name string, id uint32) (string, bool) {
	return c.PreviewN(name, id, DefaultPreviewFields)
}

// PreviewN renders at most maxFields interesting fields of an entry:
//
//	[Faction] ID: 72
//	  ReputationIndex: 12
//	  ...
//
// The ID column, columns starting with an underscore and values that render
// as "" or "0" are skipped. Values longer than 50 characters are cut to 47
// plus "...". A maxFields below 1 means DefaultPreviewFields.
//
// The trailing "  ..." line is written only when a field past the limit
// would itself pass the filters. Reaching the limit alone does not add it,
// so an entry whose remaining columns are all zero or internal previews
// without the ellipsis. Older previewers appended it whenever the limit was
// hit; this one intentionally does not.
func (c *Cache) PreviewN(name string, id uint32, maxFields int) (string, bool) {
	e, ok := c.Lookup(name, id)
	if !ok {
		return "", false
	}
	if maxFields < 1 {
		maxFields = DefaultPreviewFields
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ID: %d", name, id)
	shown := 0
	for _, f := range e.Fields {
		s, ok := previewValue(f.Name, strconv.FormatUint(uint64(f.Value), 10))
		if !ok {
			continue
		}
		if shown == maxFields {
			b.WriteString("\n  ...")
			break
		}
		fmt.Fprintf(&b, "\n  %s: %s", f.Name, s)
		shown++
	}
	return b.String(), true
}

// previewValue applies the preview filters to one rendered value and
// reports whether it should be shown.
func previewValue(field, s string) (string, bool) {
	if field == primaryKeyColumn || strings.HasPrefix(field, internalPrefix) {
		return "", false
	}
	if utf8.RuneCountInString(s) > previewMaxLen {
		s = string([]rune(s)[:previewKeepLen]) + "..."
	}
	if s == "" || s == "0" {
		return "", false
	}
	return s, true
}
