package main

import "github.com/urfave/cli/v3"

// options holds the values of the global flags after config defaults have
// been applied.
type options struct {
	dbcDir        string
	schemaFile    string
	previewFields int64
	logLevel      string
	logFormat     string
	debug         bool
}

func tableFlags(o *options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "directory containing .dbc tables",
			Sources:     cli.EnvVars(envDBCDir),
			Destination: &o.dbcDir,
		},
		&cli.StringFlag{
			Name:        "schema",
			Usage:       "schema definition file (.yaml or .json) layered over the built-in schemas",
			Destination: &o.schemaFile,
		},
		&cli.Int64Flag{
			Name:        "preview-fields",
			Usage:       "number of fields shown in entry previews",
			Value:       6,
			Destination: &o.previewFields,
		},
	}
}

func loggingFlags(o *options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &o.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &o.debug,
		},
	}
}
