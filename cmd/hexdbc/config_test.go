package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg != (Config{}) {
			t.Fatalf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "dbc_dir: /games/wow/DBFilesClient\nschema_file: extra.yaml\npreview_fields: 3\nlog_level: debug\nserver_address: 0.0.0.0:9000\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.DBCDir != "/games/wow/DBFilesClient" || cfg.SchemaFile != "extra.yaml" {
			t.Fatalf("unexpected paths: %+v", cfg)
		}
		if cfg.PreviewFields == nil || *cfg.PreviewFields != 3 {
			t.Fatalf("unexpected preview_fields: %v", cfg.PreviewFields)
		}
		if cfg.LogLevel != "debug" || cfg.ServerAddress != "0.0.0.0:9000" {
			t.Fatalf("unexpected values: %+v", cfg)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("preview_fields: [nope"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected error for malformed config")
		}
	})
}
