package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/tossbridge/config"
	"github.com/plus3/tossbridge/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// isolate moves the test into an empty working directory with an empty home.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	return dir
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, engine.DefaultConfig(), cfg.Engine)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"stderr"}, cfg.Log.OutputPaths)
	assert.Equal(t, 960, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("embedded default", func(t *testing.T) {
		isolate(t)
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("custom path overrides only the keys it sets", func(t *testing.T) {
		dir := isolate(t)
		path := writeFile(t, dir, "custom.yaml", "engine:\n  time_scale: 2\nwindow:\n  title: fleet\n")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2.0, cfg.Engine.TimeScale)
		assert.Equal(t, 5, cfg.Engine.MaxFixedSteps)
		assert.Equal(t, "fleet", cfg.Window.Title)
		assert.Equal(t, 960, cfg.Window.Width)
	})

	t.Run("local file", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, dir, config.FileName, "log:\n  level: warn\n")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("missing custom path", func(t *testing.T) {
		dir := isolate(t)
		_, err := config.Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		dir := isolate(t)
		path := writeFile(t, dir, "bad.yaml", "engine:\n  warp_factor: 9\n")

		_, err := config.Load(path)
		assert.ErrorContains(t, err, "warp_factor")
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		dir := isolate(t)
		path := writeFile(t, dir, "empty.yaml", "")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero fixed step", func(c *config.Config) { c.Engine.FixedTimeStep = 0 }, "engine"},
		{"negative time scale", func(c *config.Config) { c.Engine.TimeScale = -1 }, "engine"},
		{"bad level", func(c *config.Config) { c.Log.Level = "loud" }, "log"},
		{"zero width", func(c *config.Config) { c.Window.Width = 0 }, "window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
