package schema

import (
	"math"

	gojson "github.com/goccy/go-json"

	"github.com/samcharles93/hexdbc/pkg/dbc"
)

// Value is one column of a typed row.
type Value struct {
	Name  string    `json:"name"`
	Type  FieldType `json:"type"`
	Raw   uint32    `json:"raw"`
	Value any       `json:"value"`
}

// MarshalJSON writes non-finite floats as their raw word, since JSON has no
// literal for NaN or infinity.
func (v Value) MarshalJSON() ([]byte, error) {
	type plain Value
	p := plain(v)
	if f, ok := v.Value.(float32); ok {
		if f64 := float64(f); math.IsNaN(f64) || math.IsInf(f64, 0) {
			p.Value = v.Raw
		}
	}
	return gojson.Marshal(p)
}

// FormatValue interprets a raw word according to the column type: int
// becomes int32, float becomes float32, string and locstring are resolved
// against the file's string pool, and everything else stays uint32.
func FormatValue(f *dbc.File, field Field, raw uint32) any {
	switch field.Type {
	case Int:
		return int32(raw)
	case Float:
		return math.Float32frombits(raw)
	case String, LocString:
		return f.String(raw)
	default:
		return raw
	}
}

// Row returns every column of one record with its type applied. Columns the
// schema does not cover are reported as Uint under their synthetic name.
func Row(f *dbc.File, s *Schema, record int) []Value {
	if f == nil || record < 0 || record >= len(f.Records) {
		return nil
	}
	raw := f.Records[record]
	out := make([]Value, len(raw))
	for i, w := range raw {
		field, ok := s.Field(i)
		if !ok {
			field = Field{Name: SyntheticName(i), Type: Uint}
		}
		out[i] = Value{
			Name:  field.Name,
			Type:  field.Type,
			Raw:   w,
			Value: FormatValue(f, field, w),
		}
	}
	return out
}
