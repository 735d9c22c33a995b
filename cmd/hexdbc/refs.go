package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/hexdbc/pkg/relations"
)

func refsCmd(o *options) *cli.Command {
	return &cli.Command{
		Name:      "refs",
		Usage:     "Show the columns of a table that reference other tables",
		ArgsUsage: "<table> [field [value]]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 || args.Len() > 3 {
				return cli.Exit("error: refs needs <table> [field [value]]", 1)
			}
			table := args.Get(0)
			w := cmd.Root().Writer

			if args.Len() == 1 {
				rels := relations.AllFor(table)
				if len(rels) == 0 {
					_, _ = fmt.Fprintf(w, "%s has no known references\n", table)
					return nil
				}
				fields := make([]string, 0, len(rels))
				for field := range rels {
					fields = append(fields, field)
				}
				slices.Sort(fields)
				for _, field := range fields {
					_, _ = fmt.Fprintf(w, "%-32s -> %s\n", field, rels[field])
				}
				return nil
			}

			field := args.Get(1)
			target, ok := relations.Resolve(table, field)
			if !ok {
				return cli.Exit(fmt.Sprintf("error: %s.%s is not a reference", table, field), 1)
			}
			if args.Len() == 2 {
				_, _ = fmt.Fprintln(w, target)
				return nil
			}

			id, err := parseKey(args.Get(2))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			cache, err := openCache(ctx, o, true)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			text, ok := cache.PreviewN(target, id, int(o.previewFields))
			if !ok {
				_, _ = fmt.Fprintf(w, "%s -> %s #%d (not found)\n", field, target, id)
				return nil
			}
			_, _ = fmt.Fprintln(w, text)
			return nil
		},
	}
}
