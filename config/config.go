package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// InputConfig selects which MIDI input ports are connected. Patterns are
// case-insensitive substrings of the port name.
type InputConfig struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// SerialConfig points at the strip controller's serial port.
type SerialConfig struct {
	Port string `json:"port,omitempty"`
	Baud int    `json:"baud,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette    string `json:"palette,omitempty"` // GIMP .gpl file, built-in palette when empty
	LastPreset string `json:"lastPreset,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	NumLEDs   int          `json:"numLeds"`
	FPS       int          `json:"fps"`
	Inputs    InputConfig  `json:"inputs"`
	Launchpad bool         `json:"launchpad"` // mirror the strip on a Launchpad X
	Serial    SerialConfig `json:"serial"`
	UI        UIConfig     `json:"ui,omitempty"`
	Debug     bool         `json:"debug,omitempty"`
}

const (
	DefaultFPS  = 30
	DefaultBaud = 115200
)

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		NumLEDs: 108,
		FPS:     DefaultFPS,
		Inputs: InputConfig{
			Exclude: []string{"Midi Through", "Through Port", "Dummy"},
		},
		Launchpad: true,
		Serial: SerialConfig{
			Baud: DefaultBaud,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midi-rgb-lighting"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// PresetDir returns the directory presets are saved to.
func PresetDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Fields missing from the file keep their
// defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.NumLEDs <= 0 {
		c.NumLEDs = 108
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	if c.Serial.Baud <= 0 {
		c.Serial.Baud = DefaultBaud
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
