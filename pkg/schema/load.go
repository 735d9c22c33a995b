package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Locales are the client locale columns of a localized string, in file
// order. A localized string occupies one column per locale plus a flags
// column.
var Locales = [...]string{
	"enUS", "koKR", "frFR", "deDE", "enCN", "enTW", "esES", "esMX",
	"ruRU", "jaJP", "ptPT", "itIT", "Unk12", "Unk13", "Unk14", "Unk15",
}

// LocStringColumns is the number of raw columns one localized string uses.
const LocStringColumns = len(Locales) + 1

//go:embed builtin.yaml
var builtinYAML []byte

var (
	builtinOnce sync.Once
	builtin     *MapCatalog
	builtinErr  error
)

// Builtin returns the catalog embedded in the binary. It only covers a
// handful of commonly referenced tables; complete layouts come from a
// definitions file passed to LoadFile.
func Builtin() *MapCatalog {
	builtinOnce.Do(func() {
		builtin, builtinErr = LoadYAML(bytes.NewReader(builtinYAML))
	})
	if builtinErr != nil {
		// The embedded file is part of the build; failing to parse it is a bug.
		panic(fmt.Errorf("schema: builtin catalog: %w", builtinErr))
	}
	return builtin
}

type definitionFile struct {
	Tables []tableDef `yaml:"tables" json:"tables"`
}

type tableDef struct {
	Name   string                       `yaml:"name" json:"name"`
	Fields []fieldDef                   `yaml:"fields" json:"fields"`
	Enums  map[string]map[uint32]string `yaml:"enums" json:"enums"`
}

type fieldDef struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Count       int    `yaml:"count" json:"count"`
	Description string `yaml:"description" json:"description"`
	Enum        string `yaml:"enum" json:"enum"`
}

// LoadYAML reads a definitions document:
//
//	tables:
//	  - name: Faction
//	    fields:
//	      - {name: ID, type: int}
//	      - {name: Name_Lang, type: locstring}
//	      - {name: ReputationRaceMask, type: int, count: 4}
func LoadYAML(r io.Reader) (*MapCatalog, error) {
	var doc definitionFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}
	return doc.build()
}

// LoadJSON reads the same document shape as LoadYAML, encoded as JSON.
func LoadJSON(r io.Reader) (*MapCatalog, error) {
	var doc definitionFile
	if err := gojson.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse schema json: %w", err)
	}
	return doc.build()
}

// LoadFile picks the decoder from the file extension: .json is JSON,
// anything else is YAML.
func LoadFile(path string) (*MapCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(f)
	}
	return LoadYAML(f)
}

func (d definitionFile) build() (*MapCatalog, error) {
	schemas := make([]*Schema, 0, len(d.Tables))
	for _, t := range d.Tables {
		if strings.TrimSpace(t.Name) == "" {
			return nil, errors.New("schema: table without a name")
		}
		s := &Schema{Name: t.Name, Enums: t.Enums}
		for _, fd := range t.Fields {
			fields, err := fd.expand()
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.Name, err)
			}
			s.Fields = append(s.Fields, fields...)
		}
		schemas = append(schemas, s)
	}
	return NewCatalog(schemas...)
}

// expand turns one definition entry into its raw columns. Arrays get a
// numeric suffix per element, which is also the convention the relation
// graph relies on to resolve Name_3 against Name.
func (fd fieldDef) expand() ([]Field, error) {
	typ, err := ParseFieldType(fd.Type)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", fd.Name, err)
	}
	base := Field{Name: fd.Name, Type: typ, Description: fd.Description, EnumName: fd.Enum}

	if typ == LocString {
		out := make([]Field, 0, LocStringColumns)
		for _, loc := range Locales {
			f := base
			f.Name = fd.Name + "_" + loc
			out = append(out, f)
		}
		flags := base
		flags.Name = fd.Name + "_Flags"
		flags.Type = Uint
		return append(out, flags), nil
	}

	if fd.Count < 0 {
		return nil, fmt.Errorf("field %s: negative count %d", fd.Name, fd.Count)
	}
	if fd.Count <= 1 {
		return []Field{base}, nil
	}
	out := make([]Field, fd.Count)
	for i := range out {
		out[i] = base
		out[i].Name = fmt.Sprintf("%s_%d", fd.Name, i)
	}
	return out, nil
}
