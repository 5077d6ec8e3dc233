// Package config loads wavegen settings from TOML, YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/project"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "wavegen.toml"

// DefaultMaxLength caps imported timelines unless the config says otherwise.
const DefaultMaxLength = 1 << 20

// Config controls the CLI and viewer.
type Config struct {
	Project ProjectConfig `toml:"project" yaml:"project" json:"project"`
	Import  ImportConfig  `toml:"import" yaml:"import" json:"import"`
	Export  ExportConfig  `toml:"export" yaml:"export" json:"export"`
	Log     LogConfig     `toml:"log" yaml:"log" json:"log"`
}

type ProjectConfig struct {
	Length int `toml:"length" yaml:"length" json:"length"` // Timeline length of new projects (default: 16)
}

type ImportConfig struct {
	UnknownBit  bool   `toml:"unknown_bit" yaml:"unknown_bit" json:"unknown_bit"`    // Substitute for x bits (default: false)
	HighZBit    bool   `toml:"high_z_bit" yaml:"high_z_bit" json:"high_z_bit"`       // Substitute for z bits (default: false)
	TimeDivisor uint64 `toml:"time_divisor" yaml:"time_divisor" json:"time_divisor"` // 0 uses the $timescale magnitude
	MaxLength   int    `toml:"max_length" yaml:"max_length" json:"max_length"`       // 0 means no cap (default: 1048576)
}

type ExportConfig struct {
	Dir      string `toml:"dir" yaml:"dir" json:"dir"`                // Output directory (default: ./test)
	Memb     bool   `toml:"memb" yaml:"memb" json:"memb"`             // Write <name>_file.memb dumps (default: true)
	Manifest bool   `toml:"manifest" yaml:"manifest" json:"manifest"` // Write manifest.yaml (default: true)
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level" json:"level"`    // logrus level name (default: info)
	Format string `toml:"format" yaml:"format" json:"format"` // text or json (default: text)
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{Length: project.DefaultLength},
		Import:  ImportConfig{MaxLength: DefaultMaxLength},
		Export:  ExportConfig{Dir: "./test", Memb: true, Manifest: true},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path on top of the defaults, choosing the decoder by
// extension. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Project.Length < 1 {
		return fmt.Errorf("project.length must be at least 1, got %d", c.Project.Length)
	}
	if c.Import.MaxLength < 0 {
		return fmt.Errorf("import.max_length must not be negative, got %d", c.Import.MaxLength)
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir must not be empty")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Importer returns a VCD importer configured from the import section.
func (c *Config) Importer() *vcd.Importer {
	return &vcd.Importer{
		UnknownBit:  c.Import.UnknownBit,
		HighZBit:    c.Import.HighZBit,
		TimeDivisor: c.Import.TimeDivisor,
		MaxLength:   c.Import.MaxLength,
	}
}

// ExportOptions returns the export switches.
func (c *Config) ExportOptions() project.ExportOptions {
	return project.ExportOptions{Memb: c.Export.Memb, Manifest: c.Export.Manifest}
}
