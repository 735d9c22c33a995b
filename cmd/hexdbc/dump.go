package main

import (
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/hexdbc/pkg/dbc"
	"github.com/samcharles93/hexdbc/pkg/schema"
)

type dumpRow struct {
	Index  int            `json:"index"`
	Fields []schema.Value `json:"fields,omitempty"`
	Raw    dbc.Record     `json:"raw,omitempty"`
}

func dumpCmd(o *options) *cli.Command {
	var (
		limit  int64
		offset int64
		raw    bool
	)

	return &cli.Command{
		Name:      "dump",
		Usage:     "Write the records of a table as JSON lines",
		ArgsUsage: "<file|table>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of records to write (0 for all)",
				Destination: &limit,
			},
			&cli.Int64Flag{
				Name:        "offset",
				Usage:       "index of the first record to write",
				Destination: &offset,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "write raw 32-bit words instead of typed values",
				Destination: &raw,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := resolveTableFile(cmd.Args().First(), o.dbcDir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			f, err := dbc.Open(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open table: %v", err), 1)
			}
			cat, err := loadCatalog(o.schemaFile)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			s, _ := cat.Lookup(tableName(path))

			if offset < 0 || limit < 0 {
				return cli.Exit("error: --offset and --limit must not be negative", 1)
			}
			start := min(int(offset), len(f.Records))
			end := len(f.Records)
			if limit > 0 {
				end = min(start+int(limit), end)
			}

			enc := gojson.NewEncoder(cmd.Root().Writer)
			for i := start; i < end; i++ {
				r := dumpRow{Index: i}
				if raw {
					r.Raw = f.Records[i]
				} else {
					r.Fields = schema.Row(f, s, i)
				}
				if err := enc.Encode(r); err != nil {
					return fmt.Errorf("encode record %d: %w", i, err)
				}
			}
			return nil
		},
	}
}
