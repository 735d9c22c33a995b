// Package schema describes table layouts: an ordered list of named, typed
// columns aligned positionally with a record's raw words.
//
// The codec and cache never depend on a schema being present or complete.
// Lookups that miss, or schemas shorter than the record, fall back to
// synthetic column names.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFieldType = errors.New("schema: unknown field type")
	ErrDuplicateTable   = errors.New("schema: duplicate table")
)

// FieldType is the semantic type of a column. The codec stores every column
// as a raw uint32; the type only says how to read it.
type FieldType uint8

const (
	Uint FieldType = iota
	Int
	Float
	String
	LocString
	Flags
	Enum
)

var fieldTypeNames = [...]string{
	Uint:      "uint",
	Int:       "int",
	Float:     "float",
	String:    "string",
	LocString: "locstring",
	Flags:     "flags",
	Enum:      "enum",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// ParseFieldType accepts the lower-case names produced by String. An empty
// name means Uint.
func ParseFieldType(s string) (FieldType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Uint, nil
	}
	for i, name := range fieldTypeNames {
		if name == s {
			return FieldType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFieldType, s)
}

func (t FieldType) MarshalText() ([]byte, error) {
	if int(t) >= len(fieldTypeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFieldType, uint8(t))
	}
	return []byte(fieldTypeNames[t]), nil
}

func (t *FieldType) UnmarshalText(b []byte) error {
	v, err := ParseFieldType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// IsText reports whether raw values of this type are string pool offsets.
func (t FieldType) IsText() bool {
	return t == String || t == LocString
}

type Field struct {
	Name        string
	Type        FieldType
	Description string
	EnumName    string
}

type Schema struct {
	Name   string
	Fields []Field
	Enums  map[string]map[uint32]string
}

// Field returns the column at index i, if the schema has one.
func (s *Schema) Field(i int) (Field, bool) {
	if s == nil || i < 0 || i >= len(s.Fields) {
		return Field{}, false
	}
	return s.Fields[i], true
}

// FieldName returns the column name at index i, or Field{i} when the schema
// is missing or too short.
func (s *Schema) FieldName(i int) string {
	if f, ok := s.Field(i); ok {
		return f.Name
	}
	return SyntheticName(i)
}

// SyntheticName is the name given to a column no schema covers.
func SyntheticName(i int) string {
	return fmt.Sprintf("Field%d", i)
}

// Fallback builds a schema of fieldCount generic uint columns.
func Fallback(fieldCount int, name string) *Schema {
	if name == "" {
		name = "Unknown"
	}
	fields := make([]Field, fieldCount)
	for i := range fields {
		fields[i] = Field{Name: fmt.Sprintf("field_%d", i), Type: Uint}
	}
	return &Schema{Name: name, Fields: fields}
}
