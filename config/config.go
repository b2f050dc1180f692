// Package config implements the engine's versioned configuration
// surface: a Config struct loadable from a named preset, a YAML file,
// or environment variables, with per-field Provenance so a run can
// report where every effective setting came from.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only configuration schema version this build
// understands. Loading a file with a different version is rejected
// rather than guessed at.
const CurrentVersion = 1

// Preset names a built-in bundle of stage settings.
type Preset string

const (
	PresetFast     Preset = "fast"
	PresetBalanced Preset = "balanced"
	PresetThorough Preset = "thorough"
	PresetCustom   Preset = "custom"
)

// Source identifies where a field's effective value came from.
type Source string

const (
	SourcePreset  Source = "preset"
	SourceYAML    Source = "yaml"
	SourceEnv     Source = "env"
	SourceBuilder Source = "builder"
)

// Provenance records a field's value source, for diagnostics and
// reproducibility reports (the analyze command's JSON report includes
// it under config_provenance).
type Provenance struct {
	Source Source
	Detail string // file path for YAML, var name for Env, preset name for Preset
}

// Config is the engine's full tunable surface. Every field has a
// matching entry in provenance once FromPreset returns, even if the field
// kept its preset default.
type Config struct {
	Version int    `yaml:"version"`
	Preset  Preset `yaml:"preset"`

	EnablePointsTo    bool `yaml:"enable_points_to"`
	EnableTaint       bool `yaml:"enable_taint"`
	EnableClone       bool `yaml:"enable_clone"`
	EnableHeapChecks  bool `yaml:"enable_heap_checks"`
	EnableFeasibility bool `yaml:"enable_feasibility"`

	MaxCallDepth               int `yaml:"max_call_depth"`
	PointsToEscalationThreshold int `yaml:"points_to_escalation_threshold"`
	TaintMaxHops                int `yaml:"taint_max_hops"`

	CacheL1Entries int    `yaml:"cache_l1_entries"`
	CacheDir       string `yaml:"cache_dir"`

	provenance map[string]Provenance
}

// Provenance returns the recorded source for a field name (the yaml
// tag, e.g. "enable_taint"), or a zero Provenance if unrecorded.
func (c *Config) Provenance(field string) Provenance {
	if c.provenance == nil {
		return Provenance{}
	}
	return c.provenance[field]
}

func (c *Config) record(field string, p Provenance) {
	if c.provenance == nil {
		c.provenance = make(map[string]Provenance)
	}
	c.provenance[field] = p
}

// presets maps each built-in preset to its base settings. PresetCustom
// has no entry: a caller selecting it must fully populate the Config
// via YAML/env/builder.
var presets = map[Preset]Config{
	PresetFast: {
		Version: CurrentVersion, Preset: PresetFast,
		EnablePointsTo: false, EnableTaint: true, EnableClone: false,
		EnableHeapChecks: false, EnableFeasibility: false,
		MaxCallDepth: 5, PointsToEscalationThreshold: 50, TaintMaxHops: 8,
		CacheL1Entries: 512, CacheDir: ".pathfinder-cache",
	},
	PresetBalanced: {
		Version: CurrentVersion, Preset: PresetBalanced,
		EnablePointsTo: true, EnableTaint: true, EnableClone: true,
		EnableHeapChecks: true, EnableFeasibility: true,
		MaxCallDepth: 15, PointsToEscalationThreshold: 200, TaintMaxHops: 20,
		CacheL1Entries: 2048, CacheDir: ".pathfinder-cache",
	},
	PresetThorough: {
		Version: CurrentVersion, Preset: PresetThorough,
		EnablePointsTo: true, EnableTaint: true, EnableClone: true,
		EnableHeapChecks: true, EnableFeasibility: true,
		MaxCallDepth: 50, PointsToEscalationThreshold: 1000, TaintMaxHops: 64,
		CacheL1Entries: 8192, CacheDir: ".pathfinder-cache",
	},
}

// Default returns PresetBalanced, the engine's out-of-the-box default.
func Default() *Config {
	cfg, _ := FromPreset(PresetBalanced)
	return cfg
}

// FromPreset returns a Config seeded from a named built-in preset, with
// every field's provenance set to Preset.
func FromPreset(p Preset) (*Config, error) {
	base, ok := presets[p]
	if !ok {
		return nil, fmt.Errorf("config: unknown preset %q", p)
	}
	cfg := base
	cfg.provenance = nil
	fields := []string{
		"version", "preset", "enable_points_to", "enable_taint", "enable_clone",
		"enable_heap_checks", "enable_feasibility", "max_call_depth",
		"points_to_escalation_threshold", "taint_max_hops",
		"cache_l1_entries", "cache_dir",
	}
	for _, f := range fields {
		cfg.record(f, Provenance{Source: SourcePreset, Detail: string(p)})
	}
	return &cfg, nil
}

// LoadYAML overlays YAML-file fields onto an existing Config, recording
// SourceYAML provenance only for the fields the file actually sets.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if v, ok := raw["version"]; ok {
		version, _ := v.(int)
		if version != CurrentVersion {
			return fmt.Errorf("config: %s declares version %v, this build understands %d", path, v, CurrentVersion)
		}
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}

	for field := range raw {
		applyField(cfg, &overlay, field)
		cfg.record(field, Provenance{Source: SourceYAML, Detail: path})
	}
	return nil
}

// applyField copies one named field from overlay into cfg. Unknown
// field names are ignored; yaml.Unmarshal would already have rejected
// them in strict mode, and this engine doesn't use strict mode so
// forward-compatible configs (newer fields this build doesn't know)
// degrade gracefully instead of failing a run.
func applyField(cfg, overlay *Config, field string) {
	switch field {
	case "preset":
		cfg.Preset = overlay.Preset
	case "enable_points_to":
		cfg.EnablePointsTo = overlay.EnablePointsTo
	case "enable_taint":
		cfg.EnableTaint = overlay.EnableTaint
	case "enable_clone":
		cfg.EnableClone = overlay.EnableClone
	case "enable_heap_checks":
		cfg.EnableHeapChecks = overlay.EnableHeapChecks
	case "enable_feasibility":
		cfg.EnableFeasibility = overlay.EnableFeasibility
	case "max_call_depth":
		cfg.MaxCallDepth = overlay.MaxCallDepth
	case "points_to_escalation_threshold":
		cfg.PointsToEscalationThreshold = overlay.PointsToEscalationThreshold
	case "taint_max_hops":
		cfg.TaintMaxHops = overlay.TaintMaxHops
	case "cache_l1_entries":
		cfg.CacheL1Entries = overlay.CacheL1Entries
	case "cache_dir":
		cfg.CacheDir = overlay.CacheDir
	}
}

// envBindings maps each environment variable this engine recognizes to
// the Config field it overrides, highest-precedence source: env always
// wins over YAML and preset.
var envBindings = []struct {
	Var   string
	Field string
}{
	{"PATHFINDER_ENABLE_POINTS_TO", "enable_points_to"},
	{"PATHFINDER_ENABLE_TAINT", "enable_taint"},
	{"PATHFINDER_ENABLE_CLONE", "enable_clone"},
	{"PATHFINDER_ENABLE_HEAP_CHECKS", "enable_heap_checks"},
	{"PATHFINDER_ENABLE_FEASIBILITY", "enable_feasibility"},
	{"PATHFINDER_MAX_CALL_DEPTH", "max_call_depth"},
	{"PATHFINDER_CACHE_DIR", "cache_dir"},
}

// ApplyEnv overlays recognized environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	for _, b := range envBindings {
		v, ok := os.LookupEnv(b.Var)
		if !ok {
			continue
		}
		setFromEnv(cfg, b.Field, v)
		cfg.record(b.Field, Provenance{Source: SourceEnv, Detail: b.Var})
	}
}

func setFromEnv(cfg *Config, field, value string) {
	switch field {
	case "enable_points_to":
		cfg.EnablePointsTo = parseBool(value)
	case "enable_taint":
		cfg.EnableTaint = parseBool(value)
	case "enable_clone":
		cfg.EnableClone = parseBool(value)
	case "enable_heap_checks":
		cfg.EnableHeapChecks = parseBool(value)
	case "enable_feasibility":
		cfg.EnableFeasibility = parseBool(value)
	case "max_call_depth":
		if n, err := strconv.Atoi(value); err == nil {
			cfg.MaxCallDepth = n
		}
	case "cache_dir":
		cfg.CacheDir = value
	}
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Set overlays a single field via the builder API, the lowest-ceremony
// override path (used by tests), recording
// SourceBuilder provenance.
func (c *Config) Set(field string, value any) error {
	overlay := *c
	switch field {
	case "enable_points_to":
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("config: %s expects bool", field)
		}
		overlay.EnablePointsTo = v
	case "enable_taint":
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("config: %s expects bool", field)
		}
		overlay.EnableTaint = v
	case "max_call_depth":
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("config: %s expects int", field)
		}
		overlay.MaxCallDepth = v
	case "cache_dir":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("config: %s expects string", field)
		}
		overlay.CacheDir = v
	default:
		return fmt.Errorf("config: unknown or unsettable field %q", field)
	}
	*c = overlay
	c.record(field, Provenance{Source: SourceBuilder})
	return nil
}
