package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samcharles93/hexdbc/internal/dbccache"
	"github.com/samcharles93/hexdbc/internal/logger"
	"github.com/samcharles93/hexdbc/pkg/schema"
)

// loadCatalog returns the built-in schemas, with the definitions in path
// (if any) taking precedence.
func loadCatalog(path string) (schema.Catalog, error) {
	builtin := schema.Builtin()
	if path == "" {
		return builtin, nil
	}
	user, err := schema.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}
	return schema.Chain{user, builtin}, nil
}

// openCache builds a table cache rooted at the configured directory.
func openCache(ctx context.Context, o *options, requireDir bool) (*dbccache.Cache, error) {
	cat, err := loadCatalog(o.schemaFile)
	if err != nil {
		return nil, err
	}
	cache := dbccache.New(dbccache.Options{
		Catalog: cat,
		Logger:  logger.FromContext(ctx).With("component", "dbccache"),
	})
	if o.dbcDir == "" && !requireDir {
		return cache, nil
	}
	dir, err := requireTableDir(o.dbcDir)
	if err != nil {
		return nil, err
	}
	cache.SetRoot(dir)
	return cache, nil
}

func parseKey(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an unsigned 32-bit integer", s)
	}
	return uint32(v), nil
}
