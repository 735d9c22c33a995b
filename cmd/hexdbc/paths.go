package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samcharles93/hexdbc/pkg/dbc"
)

const envDBCDir = "HEXDBC_DBC_DIR"

func requireTableDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", fmt.Errorf("--dir is required unless %s is set", envDBCDir)
	}
	st, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return "", fmt.Errorf("table path is not a directory: %s", dir)
	}
	return filepath.Clean(dir), nil
}

func discoverTables(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("table directory is empty")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	tables := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), dbc.Ext) {
			continue
		}
		tables = append(tables, filepath.Join(dir, name))
	}
	sort.Strings(tables)
	return tables, nil
}

// tableName is the catalog name of a table file: its base name without the
// extension.
func tableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolveTableFile accepts either a path to a table file or a bare table
// name looked up in dir.
func resolveTableFile(arg, dir string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("table file or name is required")
	}
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		return filepath.Clean(arg), nil
	}
	if strings.ContainsRune(arg, filepath.Separator) || strings.EqualFold(filepath.Ext(arg), dbc.Ext) || dir == "" {
		return "", fmt.Errorf("table file not found: %s", arg)
	}

	tables, err := discoverTables(dir)
	if err != nil {
		return "", err
	}
	for _, path := range tables {
		if tableName(path) == arg {
			return path, nil
		}
	}
	for _, path := range tables {
		if strings.EqualFold(tableName(path), arg) {
			return path, nil
		}
	}
	return "", fmt.Errorf("table %q not found in %s", arg, dir)
}
