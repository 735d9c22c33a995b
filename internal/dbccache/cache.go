// Package dbccache keeps the tables of one client data directory available
// for cross-referencing without parsing them up front.
//
// SetRoot only lists the directory. A table is decoded the first time it is
// asked for, and its primary-key index is built the first time an entry is
// looked up. A table supplied through Override (an unsaved edit held by the
// editor) takes precedence over the file on disk.
//
// A Cache is not safe for concurrent use. Hosts that serve it from several
// goroutines must serialize calls themselves.
package dbccache

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samcharles93/hexdbc/internal/logger"
	"github.com/samcharles93/hexdbc/pkg/dbc"
	"github.com/samcharles93/hexdbc/pkg/schema"
)

type Options struct {
	// Catalog names the columns of looked-up entries. Nil means every column
	// gets a synthetic name.
	Catalog schema.Catalog

	// Logger receives load failures. Nil means logger.Discard.
	Logger logger.Logger
}

type Cache struct {
	catalog schema.Catalog
	log     logger.Logger

	root    string
	known   map[string]struct{}
	paths   map[string]string
	loaded  map[string]*dbc.File
	indices map[string]map[uint32]dbc.Record
	loadErr map[string]error
}

func New(opts Options) *Cache {
	c := &Cache{
		catalog: opts.Catalog,
		log:     opts.Logger,
	}
	if c.log == nil {
		c.log = logger.Discard()
	}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.known = make(map[string]struct{})
	c.paths = make(map[string]string)
	c.loaded = make(map[string]*dbc.File)
	c.indices = make(map[string]map[uint32]dbc.Record)
	c.loadErr = make(map[string]error)
}

// SetRoot forgets everything cached and lists dir. Every entry other than a
// directory with the table extension (matched case-insensitively) becomes
// known under its base name as found on disk; symlinks are listed and
// resolved when the table is first loaded. Nothing is decoded. A missing or unreadable
// directory leaves the cache empty.
func (c *Cache) SetRoot(dir string) {
	c.reset()
	c.root = dir
	if dir == "" {
		return
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		c.log.Debug("table directory not listed", "dir", dir, "err", err)
		return
	}
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, dbc.Ext) {
			continue
		}
		table := strings.TrimSuffix(name, ext)
		if table == "" {
			continue
		}
		c.known[table] = struct{}{}
		c.paths[table] = filepath.Join(dir, name)
	}
	c.log.Debug("table directory listed", "dir", dir, "tables", len(c.known))
}

// Clear forgets the root directory and everything cached.
func (c *Cache) Clear() {
	c.reset()
	c.root = ""
}

// Root is the directory passed to the last SetRoot.
func (c *Cache) Root() string {
	return c.root
}

// IsKnown reports whether name was found on disk or supplied via Override.
// It does not say whether the table can actually be decoded.
func (c *Cache) IsKnown(name string) bool {
	_, ok := c.known[name]
	return ok
}

// Get returns the table called name, decoding it from disk on first use.
//
// A table that fails to decode is reported to the logger, remembered for
// LoadError, and returned as absent; other tables stay usable. Failed loads
// are retried on the next call.
func (c *Cache) Get(name string) (*dbc.File, bool) {
	if f, ok := c.loaded[name]; ok {
		return f, true
	}
	if c.root == "" || !c.IsKnown(name) {
		return nil, false
	}
	path, ok := c.paths[name]
	if !ok {
		return nil, false
	}
	if st, err := os.Stat(path); err != nil || !st.Mode().IsRegular() {
		return nil, false
	}

	f, err := dbc.Open(path)
	if err != nil {
		c.loadErr[name] = err
		c.log.Warn("load table failed", "table", name, "path", path, "err", err)
		return nil, false
	}
	delete(c.loadErr, name)
	c.loaded[name] = f
	delete(c.indices, name)
	c.log.Debug("table loaded", "table", name, "records", len(f.Records))
	return f, true
}

// LoadError is the error from the most recent failed attempt to decode name,
// or nil.
func (c *Cache) LoadError(name string) error {
	return c.loadErr[name]
}

// Override installs f as the content of name, whether or not a file exists
// on disk, and makes name known so other tables can reference it.
//
// A nil f drops any override of name. The table falls back to its file on
// disk, which is decoded again on next use, and a name with no file stops
// being known.
func (c *Cache) Override(name string, f *dbc.File) {
	if f == nil {
		delete(c.loaded, name)
		delete(c.indices, name)
		delete(c.loadErr, name)
		if _, onDisk := c.paths[name]; !onDisk {
			delete(c.known, name)
		}
		return
	}
	c.loaded[name] = f
	c.known[name] = struct{}{}
	delete(c.indices, name)
	delete(c.loadErr, name)
}

// Loaded reports whether name has been decoded or overridden.
func (c *Cache) Loaded(name string) bool {
	_, ok := c.loaded[name]
	return ok
}

// KnownNames returns every known table name, sorted.
func (c *Cache) KnownNames() []string {
	names := make([]string, 0, len(c.known))
	for name := range c.known {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Schema returns the catalog entry for name, if any.
func (c *Cache) Schema(name string) (*schema.Schema, bool) {
	if c.catalog == nil {
		return nil, false
	}
	return c.catalog.Lookup(name)
}

// ensureIndex builds the primary-key index of name from f. Field 0 is the
// key of every table; empty records are skipped and a repeated key keeps the
// last record.
func (c *Cache) ensureIndex(name string, f *dbc.File) map[uint32]dbc.Record {
	if idx, ok := c.indices[name]; ok {
		return idx
	}
	idx := make(map[uint32]dbc.Record, len(f.Records))
	for _, rec := range f.Records {
		if len(rec) == 0 {
			continue
		}
		idx[rec[0]] = rec
	}
	c.indices[name] = idx
	return idx
}

// Record returns the raw record whose primary key is id.
func (c *Cache) Record(name string, id uint32) (dbc.Record, bool) {
	f, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	rec, ok := c.ensureIndex(name, f)[id]
	return rec, ok
}
