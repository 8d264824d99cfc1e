// Package config loads the YAML configuration shared by the tossbridge commands.
package config

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/engine"
	"github.com/plus3/tossbridge/logging"
	"gopkg.in/yaml.v3"
)

// FileName is the name looked up in the working directory and the user config directory.
const FileName = "tossbridge.yaml"

//go:embed defaults/tossbridge.yaml
var defaultYAML []byte

// Config is the root of the configuration file.
type Config struct {
	Engine engine.Config  `yaml:"engine"`
	Log    logging.Config `yaml:"log"`
	Window WindowConfig   `yaml:"window"`
}

// WindowConfig sizes the window opened by the play command.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the embedded default configuration.
func Default() Config {
	cfg := fallback()
	if err := decode(defaultYAML, &cfg); err != nil {
		return fallback()
	}
	return cfg
}

func fallback() Config {
	log := logging.DefaultConfig()
	log.Level = "info"
	log.Source = "tossbridge"
	return Config{
		Engine: engine.DefaultConfig(),
		Log:    log,
		Window: WindowConfig{Width: 960, Height: 720, Title: "tossbridge"},
	}
}

// Load reads the configuration. Keys missing from the file keep their default values.
// Search order: customPath -> ./tossbridge.yaml -> ~/.tossbridge/tossbridge.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, errors.Wrapf(err, "read config %s", customPath)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", customPath)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{FileName, userConfigPath()} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := decode(data, &candidate); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
		return candidate, candidate.Validate()
	}

	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return errors.Wrap(err, "engine")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// an empty file leaves the defaults in place
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// userConfigPath returns the per-user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tossbridge", FileName)
}
