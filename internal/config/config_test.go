package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Project.Length != 16 {
		t.Fatalf("Project.Length = %d, want 16", cfg.Project.Length)
	}
	if cfg.Export.Dir != "./test" || !cfg.Export.Memb || !cfg.Export.Manifest {
		t.Fatalf("Export = %+v", cfg.Export)
	}
	if cfg.Import.MaxLength != DefaultMaxLength {
		t.Fatalf("Import.MaxLength = %d, want %d", cfg.Import.MaxLength, DefaultMaxLength)
	}
	if im := cfg.Importer(); im.MaxLength != DefaultMaxLength {
		t.Fatalf("Importer().MaxLength = %d, want %d", im.MaxLength, DefaultMaxLength)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("Load(missing) = %+v, want defaults", cfg)
	}
	cfg, err = Load("")
	if err != nil || *cfg != *DefaultConfig() {
		t.Fatalf("Load(\"\") = %+v, %v", cfg, err)
	}
}

func TestLoadFormats(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"wavegen.toml", `
[project]
length = 64

[import]
unknown_bit = true
time_divisor = 10

[log]
level = "debug"
`},
		{"wavegen.yaml", `
project:
  length: 64
import:
  unknown_bit: true
  time_divisor: 10
log:
  level: debug
`},
		{"wavegen.json", `{"project":{"length":64},"import":{"unknown_bit":true,"time_divisor":10},"log":{"level":"debug"}}`},
	}

	for _, tc := range cases {
		cfg, err := Load(writeFile(t, tc.name, tc.content))
		if err != nil {
			t.Fatalf("Load(%s): %v", tc.name, err)
		}
		if cfg.Project.Length != 64 {
			t.Fatalf("%s: Project.Length = %d, want 64", tc.name, cfg.Project.Length)
		}
		if !cfg.Import.UnknownBit || cfg.Import.HighZBit || cfg.Import.TimeDivisor != 10 {
			t.Fatalf("%s: Import = %+v", tc.name, cfg.Import)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
			t.Fatalf("%s: Log = %+v", tc.name, cfg.Log)
		}
		// Untouched sections keep their defaults.
		if cfg.Export != DefaultConfig().Export {
			t.Fatalf("%s: Export = %+v, want defaults", tc.name, cfg.Export)
		}
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero.toml", "[project]\nlength = 0\n"},
		{"level.toml", "[log]\nlevel = \"loud\"\n"},
		{"format.yaml", "log:\n  format: xml\n"},
		{"dir.json", `{"export":{"dir":""}}`},
		{"cap.toml", "[import]\nmax_length = -1\n"},
		{"broken.toml", "[project\n"},
		{"broken.json", "{"},
		{"config.ini", "length=1"},
	}
	for _, tc := range cases {
		if _, err := Load(writeFile(t, tc.name, tc.content)); err == nil {
			t.Fatalf("Load(%s) succeeded, want error", tc.name)
		}
	}
}

func TestImporterAndExportOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import = ImportConfig{UnknownBit: true, HighZBit: true, TimeDivisor: 4, MaxLength: 100}
	cfg.Export.Manifest = false

	im := cfg.Importer()
	if !im.UnknownBit || !im.HighZBit || im.TimeDivisor != 4 || im.MaxLength != 100 {
		t.Fatalf("Importer() = %+v", im)
	}
	opts := cfg.ExportOptions()
	if !opts.Memb || opts.Manifest {
		t.Fatalf("ExportOptions() = %+v", opts)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf, false)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("hidden")
	log.WithField("id", "!").Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("logged %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["id"] != "!" {
		t.Fatalf("entry = %v", entry)
	}

	log, err = LogConfig{Level: "error", Format: "text"}.NewLogger(&buf, true)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("verbose level = %s, want debug", log.GetLevel())
	}

	if _, err := (LogConfig{Level: "chatty"}).NewLogger(&buf, false); err == nil {
		t.Fatalf("NewLogger with bad level succeeded")
	}
}
