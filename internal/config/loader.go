package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const appName = "floatpane"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the YAML config path under the XDG config home.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.yaml")
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	return LoadFromPath(DefaultConfigPath())
}

// LoadFromPath overlays the file at path onto DefaultConfig and validates the
// result. A missing file yields the defaults. Files ending in .toml are read
// as TOML, everything else as YAML. Unknown keys are rejected in both.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if isTOML(path) {
		err = decodeStrictTOML(data, cfg)
	} else {
		err = decodeStrictYAML(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save validates cfg and writes it to path in the format its extension names.
// Comments in an existing file are not preserved.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(path, cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal encodes cfg as TOML when path ends in .toml, YAML otherwise.
func Marshal(path string, cfg *Config) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func decodeStrictTOML(data []byte, out any) error {
	md, err := toml.Decode(string(data), out)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}
