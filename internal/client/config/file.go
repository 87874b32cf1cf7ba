package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadFile overlays c with the keys present in the file at path. Keys that
// the file does not mention keep their current values.
func (c *Config) LoadFile(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.DecodeFile(path, c)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys in %s: %v", path, undecoded)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// WriteTOML writes c to path in TOML, for `settings` style dumps and for
// bootstrapping a config file.
func (c *Config) WriteTOML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
