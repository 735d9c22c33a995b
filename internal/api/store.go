package api

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/samcharles93/hexdbc/internal/dbccache"
	"github.com/samcharles93/hexdbc/pkg/dbc"
	"github.com/samcharles93/hexdbc/pkg/relations"
	"github.com/samcharles93/hexdbc/pkg/schema"
)

// Workspace serializes access to a table cache for concurrent HTTP handlers
// and tracks the revision of every table installed through the API.
type Workspace struct {
	mu        sync.Mutex
	cache     *dbccache.Cache
	graph     *relations.Graph
	revisions map[string]string
}

func NewWorkspace(cache *dbccache.Cache, graph *relations.Graph) *Workspace {
	if cache == nil {
		cache = dbccache.New(dbccache.Options{})
	}
	if graph == nil {
		graph = relations.Default()
	}
	return &Workspace{
		cache:     cache,
		graph:     graph,
		revisions: make(map[string]string),
	}
}

func (w *Workspace) Tables() (root string, names []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cache.Root(), w.cache.KnownNames()
}

func (w *Workspace) Table(name string) (TableResponse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.get(name)
	if err != nil {
		return TableResponse{}, err
	}
	resp := TableResponse{
		Object:          "table",
		Name:            name,
		RecordCount:     uint32(len(f.Records)),
		FieldCount:      f.Header.FieldCount,
		RecordSize:      f.Header.RecordSize,
		StringBlockSize: uint32(len(f.StringPool)),
		SourcePath:      f.SourcePath,
		Revision:        w.revisions[name],
	}
	if s, ok := w.cache.Schema(name); ok {
		resp.HasSchema = true
		resp.SchemaFields = len(s.Fields)
	}
	return resp, nil
}

func (w *Workspace) Entry(name string, id uint32) (dbccache.Entry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.get(name); err != nil {
		return dbccache.Entry{}, err
	}
	e, ok := w.cache.Lookup(name, id)
	if !ok {
		return dbccache.Entry{}, newNotFound(fmt.Sprintf("%s has no entry %d", name, id))
	}
	return e, nil
}

func (w *Workspace) Preview(name string, id uint32, maxFields int) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.get(name); err != nil {
		return "", err
	}
	text, ok := w.cache.PreviewN(name, id, maxFields)
	if !ok {
		return "", newNotFound(fmt.Sprintf("%s has no entry %d", name, id))
	}
	return text, nil
}

// Rows returns up to limit typed rows starting at offset, plus the total
// record count.
func (w *Workspace) Rows(name string, offset, limit int) ([][]schema.Value, int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.get(name)
	if err != nil {
		return nil, 0, err
	}
	s, _ := w.cache.Schema(name)
	total := len(f.Records)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	rows := make([][]schema.Value, 0, end-offset)
	for i := offset; i < end; i++ {
		rows = append(rows, schema.Row(f, s, i))
	}
	return rows, total, nil
}

// Install decodes data and overrides name with it, returning the new
// revision.
func (w *Workspace) Install(name string, data []byte) (string, *dbc.File, error) {
	f, err := dbc.Decode(data)
	if err != nil {
		return "", nil, newInvalidRequest(fmt.Sprintf("decode %s: %v", name, err))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.cache.Override(name, f)
	rev := newRevisionID()
	w.revisions[name] = rev
	return rev, f, nil
}

func (w *Workspace) Relations(table string) map[string]string {
	return w.graph.AllFor(table)
}

// Resolve finds the target of table.field and, when value is given, a
// preview of the referenced entry.
func (w *Workspace) Resolve(table, field string, value *uint32) (ResolveResponse, error) {
	target, ok := w.graph.Resolve(table, field)
	if !ok {
		return ResolveResponse{}, newNotFound(fmt.Sprintf("%s.%s is not a reference", table, field))
	}
	resp := ResolveResponse{Object: "relation", Table: table, Field: field, Target: target, Value: value}
	if value == nil {
		return resp, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if text, ok := w.cache.Preview(target, *value); ok {
		resp.Preview = text
	}
	return resp, nil
}

// get must be called with w.mu held.
func (w *Workspace) get(name string) (*dbc.File, error) {
	if !w.cache.IsKnown(name) {
		return nil, newNotFound(fmt.Sprintf("table %q not found", name))
	}
	f, ok := w.cache.Get(name)
	if !ok {
		if err := w.cache.LoadError(name); err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		return nil, newNotFound(fmt.Sprintf("table %q not found", name))
	}
	return f, nil
}

func newRevisionID() string {
	return "rev_" + uuid.NewString()
}
