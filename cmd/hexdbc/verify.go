package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/hexdbc/internal/logger"
	"github.com/samcharles93/hexdbc/pkg/dbc"
)

func verifyCmd(o *options) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check that tables decode, are self-consistent and re-encode byte for byte",
		ArgsUsage: "[file|table ...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			paths, err := verifyTargets(cmd.Args().Slice(), o.dbcDir)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			w := cmd.Root().Writer
			failed := 0
			for _, path := range paths {
				problems, err := verifyTable(path)
				if err != nil {
					problems = append(problems, err.Error())
				}
				if len(problems) == 0 {
					_, _ = fmt.Fprintf(w, "ok    %s\n", path)
					continue
				}
				failed++
				for _, p := range problems {
					_, _ = fmt.Fprintf(w, "FAIL  %s: %s\n", path, p)
				}
				log.Debug("table failed verification", "path", path, "problems", len(problems))
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("error: %d of %d table(s) failed verification", failed, len(paths)), 1)
			}
			return nil
		},
	}
}

func verifyTargets(args []string, dir string) ([]string, error) {
	if len(args) == 0 {
		dir, err := requireTableDir(dir)
		if err != nil {
			return nil, err
		}
		return discoverTables(dir)
	}
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := resolveTableFile(arg, dir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// verifyTable reports every way the file at path deviates from a canonical
// table. A decode failure is returned as an error.
func verifyTable(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := dbc.Decode(data)
	if err != nil {
		return nil, err
	}

	var problems []string
	if err := f.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if int(f.Header.FieldCount) != f.Header.FieldsPerRecord() {
		problems = append(problems, fmt.Sprintf("field_count %d disagrees with record_size/4 = %d",
			f.Header.FieldCount, f.Header.FieldsPerRecord()))
	}
	if len(f.StringPool) > 0 && f.StringPool[0] != 0 {
		problems = append(problems, "string block does not start with an empty string")
	}
	if enc := dbc.Encode(f); !bytes.Equal(enc, data) {
		problems = append(problems, fmt.Sprintf("re-encoding differs (%d bytes on disk, %d encoded)", len(data), len(enc)))
	}
	return problems, nil
}
