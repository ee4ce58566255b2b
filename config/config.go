// Package config loads dataset configuration from layered JSON files with
// environment variable overrides. Later layers win over earlier ones, and
// BUILDINGDATA_* environment variables win over every file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Vincent-Morcilla/buildingdata/errors"
)

// Paths names the input files of a dataset.
type Paths struct {
	Archive string `json:"archive"`          // zip of per-stream CSV tables
	Mapper  string `json:"mapper"`           // CSV mapping table
	Model   string `json:"model"`            // building model graph, Turtle
	Schema  string `json:"schema,omitempty"` // ontology graph; empty = bundled snapshot
}

// Config is the complete dataset configuration.
type Config struct {
	Version  string `json:"version,omitempty"`  // config schema version, informational
	Building string `json:"building,omitempty"` // optional mapping-table filter
	Paths    Paths  `json:"paths"`
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}
	copied := *c
	return &copied
}

// Validate checks that the required input files are named and exist. The
// schema path is optional: when empty the bundled ontology snapshot is used.
func (c *Config) Validate() error {
	required := []struct {
		name string
		path string
	}{
		{"paths.archive", c.Paths.Archive},
		{"paths.mapper", c.Paths.Mapper},
		{"paths.model", c.Paths.Model},
	}
	for _, r := range required {
		if r.path == "" {
			return errors.WrapFatal(
				fmt.Errorf("%s is required", r.name),
				"config", "Validate", "check required paths")
		}
		if _, err := os.Stat(r.path); err != nil {
			return errors.WrapFatal(
				fmt.Errorf("%s: %w", r.name, err),
				"config", "Validate", "check required paths")
		}
	}
	if c.Paths.Schema != "" {
		if _, err := os.Stat(c.Paths.Schema); err != nil {
			return errors.WrapFatal(
				fmt.Errorf("paths.schema: %w", err),
				"config", "Validate", "check schema path")
		}
	}
	return nil
}

// Loader loads and merges configuration layers.
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

// NewLoader creates a loader with the BUILDINGDATA env prefix and
// validation disabled.
func NewLoader() *Loader {
	return &Loader{envPrefix: "BUILDINGDATA"}
}

// AddLayer appends a configuration file layer. Layers merge in order, later
// files overriding earlier ones field by field.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables path validation during Load.
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file, replacing any layers.
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load merges all layers over the defaults, applies environment overrides,
// and optionally validates.
func (l *Loader) Load() (*Config, error) {
	cfg := &Config{}

	for _, path := range l.layers {
		raw, err := l.loadRawJSON(path)
		if err != nil {
			return nil, errors.WrapFatal(
				fmt.Errorf("layer %s: %w", path, err),
				"config", "Load", "read layer")
		}
		cfg = l.mergeFromMap(cfg, raw)
	}

	l.applyEnvOverrides(cfg)

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// loadRawJSON reads one layer as a map so that absent fields do not
// overwrite values from earlier layers.
func (l *Loader) loadRawJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// mergeFromMap merges a raw layer over the base config.
func (l *Loader) mergeFromMap(base *Config, override map[string]any) *Config {
	baseJSON, err := json.Marshal(base)
	if err != nil {
		return base
	}
	var baseMap map[string]any
	if err := json.Unmarshal(baseJSON, &baseMap); err != nil {
		return base
	}

	mergedJSON, err := json.Marshal(deepMerge(baseMap, override))
	if err != nil {
		return base
	}
	var merged Config
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return base
	}
	return &merged
}

// deepMerge recursively merges two maps, override winning on conflicts.
func deepMerge(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		if v == nil {
			continue
		}
		if baseMap, ok := base[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				result[k] = deepMerge(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}
	return result
}

// applyEnvOverrides applies BUILDINGDATA_* environment variables on top of
// the merged layers.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if val := os.Getenv(l.envPrefix + "_BUILDING"); val != "" {
		cfg.Building = val
	}
	if val := os.Getenv(l.envPrefix + "_ARCHIVE"); val != "" {
		cfg.Paths.Archive = val
	}
	if val := os.Getenv(l.envPrefix + "_MAPPER"); val != "" {
		cfg.Paths.Mapper = val
	}
	if val := os.Getenv(l.envPrefix + "_MODEL"); val != "" {
		cfg.Paths.Model = val
	}
	if val := os.Getenv(l.envPrefix + "_SCHEMA"); val != "" {
		cfg.Paths.Schema = val
	}
}
