package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/hexdbc/internal/logger"
)

func tablesCmd(o *options) *cli.Command {
	var check bool

	return &cli.Command{
		Name:    "tables",
		Aliases: []string{"ls"},
		Usage:   "List the tables in the table directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "check",
				Usage:       "decode every table and report record counts and load errors",
				Destination: &check,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			cache, err := openCache(ctx, o, true)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			names := cache.KnownNames()
			if len(names) == 0 {
				log.Info("no tables found", "path", cache.Root())
				return nil
			}

			w := cmd.Root().Writer
			if !check {
				for _, name := range names {
					_, _ = fmt.Fprintln(w, name)
				}
				return nil
			}

			failed := 0
			for _, name := range names {
				f, ok := cache.Get(name)
				if !ok {
					failed++
					_, _ = fmt.Fprintf(w, "  %-32s error: %v\n", name, cache.LoadError(name))
					continue
				}
				named := "no schema"
				if _, ok := cache.Schema(name); ok {
					named = "schema"
				}
				_, _ = fmt.Fprintf(w, "  %-32s %7d records %4d fields  (%s)\n",
					name, len(f.Records), f.Header.FieldCount, named)
			}
			_, _ = fmt.Fprintf(w, "\n%d table(s), %d failed\n", len(names), failed)
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("error: %d table(s) failed to load", failed), 1)
			}
			return nil
		},
	}
}
