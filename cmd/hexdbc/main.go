package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/hexdbc/internal/logger"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	o := &options{}
	return &cli.Command{
		Name:   "hexdbc",
		Usage:  "Inspect and cross-reference WDBC client database tables",
		Writer: os.Stdout,
		Flags:  append(tableFlags(o), loggingFlags(o)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(configPath())
			if err != nil {
				return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			applyConfig(cmd, cfg, o)
			if o.debug {
				o.logLevel = "debug"
			}
			log := logger.ForFormat(o.logFormat, os.Stderr, logger.ParseLevel(o.logLevel))
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			tablesCmd(o),
			inspectCmd(o),
			dumpCmd(o),
			lookupCmd(o),
			previewCmd(o),
			refsCmd(o),
			verifyCmd(o),
			serveCmd(o),
			versionCmd(),
		},
	}
}
