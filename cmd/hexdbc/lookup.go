package main

import (
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
)

func lookupCmd(o *options) *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "lookup",
		Usage:     "Print the entry of a table with the given primary key",
		ArgsUsage: "<table> <id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the entry as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return cli.Exit("error: lookup needs <table> <id>", 1)
			}
			table := cmd.Args().Get(0)
			id, err := parseKey(cmd.Args().Get(1))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			cache, err := openCache(ctx, o, true)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			e, ok := cache.Lookup(table, id)
			if !ok {
				if err := cache.LoadError(table); err != nil {
					return cli.Exit(fmt.Sprintf("error: load %s: %v", table, err), 1)
				}
				return cli.Exit(fmt.Sprintf("error: %s has no entry %d", table, id), 1)
			}

			w := cmd.Root().Writer
			if asJSON {
				return gojson.NewEncoder(w).Encode(e)
			}
			for _, f := range e.Fields {
				_, _ = fmt.Fprintf(w, "%-32s %d\n", f.Name, f.Value)
			}
			return nil
		},
	}
}

func previewCmd(o *options) *cli.Command {
	var maxFields int64

	return &cli.Command{
		Name:      "preview",
		Usage:     "Print a short preview of an entry",
		ArgsUsage: "<table> <id>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "max-fields",
				Usage:       "number of fields to show (defaults to --preview-fields)",
				Destination: &maxFields,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return cli.Exit("error: preview needs <table> <id>", 1)
			}
			table := cmd.Args().Get(0)
			id, err := parseKey(cmd.Args().Get(1))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			cache, err := openCache(ctx, o, true)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			n := o.previewFields
			if cmd.IsSet("max-fields") {
				n = maxFields
			}
			text, ok := cache.PreviewN(table, id, int(n))
			if !ok {
				return cli.Exit(fmt.Sprintf("error: %s has no entry %d", table, id), 1)
			}
			_, _ = fmt.Fprintln(cmd.Root().Writer, text)
			return nil
		},
	}
}
