package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bderrors "github.com/Vincent-Morcilla/buildingdata/errors"
)

func writeLayer(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeLayer(t, dir, "config.json", `{
		"version": "1.0.0",
		"building": "B",
		"paths": {
			"archive": "streams.zip",
			"mapper": "mapping.csv",
			"model": "model.ttl"
		}
	}`)

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "B", cfg.Building)
	assert.Equal(t, "streams.zip", cfg.Paths.Archive)
	assert.Equal(t, "mapping.csv", cfg.Paths.Mapper)
	assert.Equal(t, "model.ttl", cfg.Paths.Model)
	assert.Empty(t, cfg.Paths.Schema)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	base := writeLayer(t, dir, "base.json", `{
		"building": "A",
		"paths": {"archive": "base.zip", "mapper": "base.csv", "model": "base.ttl"}
	}`)
	override := writeLayer(t, dir, "override.json", `{
		"building": "B",
		"paths": {"archive": "override.zip"}
	}`)

	l := NewLoader()
	l.AddLayer(base)
	l.AddLayer(override)
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "B", cfg.Building)
	assert.Equal(t, "override.zip", cfg.Paths.Archive)
	// Fields absent from the override layer survive from the base layer
	assert.Equal(t, "base.csv", cfg.Paths.Mapper)
	assert.Equal(t, "base.ttl", cfg.Paths.Model)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeLayer(t, dir, "config.json", `{
		"building": "A",
		"paths": {"archive": "file.zip", "mapper": "file.csv", "model": "file.ttl"}
	}`)

	t.Setenv("BUILDINGDATA_BUILDING", "B")
	t.Setenv("BUILDINGDATA_ARCHIVE", "env.zip")
	t.Setenv("BUILDINGDATA_SCHEMA", "env.ttl")

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "B", cfg.Building)
	assert.Equal(t, "env.zip", cfg.Paths.Archive)
	assert.Equal(t, "env.ttl", cfg.Paths.Schema)
	assert.Equal(t, "file.csv", cfg.Paths.Mapper)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	archive := writeLayer(t, dir, "streams.zip", "")
	mapping := writeLayer(t, dir, "mapping.csv", "")
	model := writeLayer(t, dir, "model.ttl", "")

	t.Run("all paths present", func(t *testing.T) {
		cfg := &Config{Paths: Paths{Archive: archive, Mapper: mapping, Model: model}}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing required path", func(t *testing.T) {
		cfg := &Config{Paths: Paths{Archive: archive, Mapper: mapping}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, bderrors.IsFatal(err))
	})

	t.Run("nonexistent file", func(t *testing.T) {
		cfg := &Config{Paths: Paths{
			Archive: archive,
			Mapper:  mapping,
			Model:   filepath.Join(dir, "no-such.ttl"),
		}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, bderrors.IsFatal(err))
	})

	t.Run("schema optional but must exist when set", func(t *testing.T) {
		cfg := &Config{Paths: Paths{
			Archive: archive,
			Mapper:  mapping,
			Model:   model,
			Schema:  filepath.Join(dir, "no-such-schema.ttl"),
		}}
		require.Error(t, cfg.Validate())
	})
}

func TestLoadWithValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeLayer(t, dir, "config.json", `{
		"paths": {"archive": "missing.zip", "mapper": "missing.csv", "model": "missing.ttl"}
	}`)

	l := NewLoader()
	l.EnableValidation(true)
	_, err := l.LoadFile(path)
	require.Error(t, err)
	assert.True(t, bderrors.IsFatal(err))
}
