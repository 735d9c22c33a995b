package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the hexdbc configuration file
// (~/.config/hexdbc/config.yaml). Empty values leave the flag defaults alone.
type Config struct {
	DBCDir        string `yaml:"dbc_dir"`
	SchemaFile    string `yaml:"schema_file"`
	PreviewFields *int64 `yaml:"preview_fields"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hexdbc", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero
// Config; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig applies config file defaults to the global options when the
// corresponding flag was not explicitly set.
func applyConfig(c *cli.Command, cfg Config, o *options) {
	if cfg.DBCDir != "" && !c.IsSet("dir") {
		o.dbcDir = cfg.DBCDir
	}
	if cfg.SchemaFile != "" && !c.IsSet("schema") {
		o.schemaFile = cfg.SchemaFile
	}
	if cfg.PreviewFields != nil && !c.IsSet("preview-fields") {
		o.previewFields = *cfg.PreviewFields
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		o.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		o.logFormat = cfg.LogFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
