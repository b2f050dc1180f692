package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPreset_Balanced(t *testing.T) {
	cfg, err := FromPreset(PresetBalanced)
	require.NoError(t, err)
	assert.True(t, cfg.EnableTaint)
	assert.Equal(t, Provenance{Source: SourcePreset, Detail: "balanced"}, cfg.Provenance("enable_taint"))
}

func TestFromPreset_UnknownRejected(t *testing.T) {
	_, err := FromPreset(Preset("nonsense"))
	assert.Error(t, err)
}

func TestLoadYAML_OverridesPresetAndRecordsProvenance(t *testing.T) {
	cfg, err := FromPreset(PresetFast)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nenable_taint: false\nmax_call_depth: 3\n"), 0o644))

	require.NoError(t, LoadYAML(cfg, path))
	assert.False(t, cfg.EnableTaint)
	assert.Equal(t, 3, cfg.MaxCallDepth)
	assert.Equal(t, Source(SourceYAML), cfg.Provenance("enable_taint").Source)
	assert.Equal(t, path, cfg.Provenance("enable_taint").Detail)
}

func TestLoadYAML_RejectsUnknownVersion(t *testing.T) {
	cfg := Default()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\n"), 0o644))

	err := LoadYAML(cfg, path)
	assert.Error(t, err)
}

func TestApplyEnv_OverridesAndRecordsProvenance(t *testing.T) {
	cfg := Default()
	t.Setenv("PATHFINDER_MAX_CALL_DEPTH", "42")
	ApplyEnv(cfg)
	assert.Equal(t, 42, cfg.MaxCallDepth)
	assert.Equal(t, Source(SourceEnv), cfg.Provenance("max_call_depth").Source)
}

func TestSet_BuilderOverrideRecordsProvenance(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Set("max_call_depth", 7))
	assert.Equal(t, 7, cfg.MaxCallDepth)
	assert.Equal(t, Source(SourceBuilder), cfg.Provenance("max_call_depth").Source)
}

func TestSet_RejectsUnknownField(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Set("not_a_field", 1))
}

func TestSet_RejectsWrongType(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Set("max_call_depth", "seven"))
}
