package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/hexdbc/pkg/dbc"
	"github.com/samcharles93/hexdbc/pkg/schema"
)

func inspectCmd(o *options) *cli.Command {
	var (
		showFields bool
		record     int64
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header and schema coverage of a table",
		ArgsUsage: "<file|table>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "fields",
				Aliases:     []string{"f"},
				Usage:       "list every column with its value in the sample record",
				Destination: &showFields,
			},
			&cli.Int64Flag{
				Name:        "record",
				Usage:       "index of the sample record used by --fields",
				Destination: &record,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := resolveTableFile(cmd.Args().First(), o.dbcDir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			stat, err := os.Stat(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: stat table path %q: %v", path, err), 1)
			}
			f, err := dbc.Open(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open table: %v", err), 1)
			}
			cat, err := loadCatalog(o.schemaFile)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			w := cmd.Root().Writer
			name := tableName(path)
			_, _ = fmt.Fprintf(w, "DBC Inspect: %s\n", path)
			_, _ = fmt.Fprintf(w, "File: %s (%s)\n", filepath.Base(path), formatBytes(uint64(stat.Size())))
			printHeader(w, &f.Header)

			s, hasSchema := cat.Lookup(name)
			printCoverage(w, name, s, hasSchema, f.Header.FieldsPerRecord())

			if showFields {
				printFields(w, f, s, int(record))
			}
			return nil
		},
	}
}

func printHeader(w io.Writer, h *dbc.Header) {
	_, _ = fmt.Fprintf(w, "WDBC Header: records=%d fields=%d record_size=%dB strings=%s\n",
		h.RecordCount, h.FieldCount, h.RecordSize, formatBytes(uint64(h.StringBlockSize)))
	if int(h.FieldCount) != h.FieldsPerRecord() {
		_, _ = fmt.Fprintf(w, "note: field_count %d disagrees with record_size/4 = %d\n",
			h.FieldCount, h.FieldsPerRecord())
	}
}

func printCoverage(w io.Writer, name string, s *schema.Schema, ok bool, columns int) {
	section(w, "Schema")
	if !ok {
		row(w, "table", name)
		row(w, "schema", "none (columns use synthetic names)")
		return
	}
	row(w, "table", s.Name)
	row(w, "schema_columns", fmt.Sprintf("%d", len(s.Fields)))
	row(w, "record_columns", fmt.Sprintf("%d", columns))
	switch {
	case len(s.Fields) < columns:
		row(w, "coverage", fmt.Sprintf("partial, %d unnamed column(s)", columns-len(s.Fields)))
	case len(s.Fields) > columns:
		row(w, "coverage", fmt.Sprintf("schema is %d column(s) wider than the records", len(s.Fields)-columns))
	default:
		row(w, "coverage", "complete")
	}
}

func printFields(w io.Writer, f *dbc.File, s *schema.Schema, record int) {
	section(w, fmt.Sprintf("Fields (record %d)", record))
	values := schema.Row(f, s, record)
	if values == nil {
		_, _ = fmt.Fprintf(w, "record %d out of range (%d records)\n", record, len(f.Records))
		return
	}
	for i, v := range values {
		_, _ = fmt.Fprintf(w, "%4d  %-32s %-9s %v\n", i, v.Name, v.Type, v.Value)
	}
}

func section(w io.Writer, title string) {
	line := strings.Repeat("-", len(title)+8)
	_, _ = fmt.Fprintf(w, "\n%s\n--- %s ---\n%s\n", line, title, line)
}

func row(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "%-24s %s\n", label+":", value)
}

func formatBytes(b uint64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.2f GiB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.2f MiB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.2f KiB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
