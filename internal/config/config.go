// Package config loads the optional ippvm.toml run configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ippvm/pkg/interpreter"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "ippvm.toml"

// Config is the contents of an ippvm.toml file.
type Config struct {
	Run Run `toml:"run"`
	Log Log `toml:"log"`

	// Dir is the directory containing the file; empty for the defaults
	Dir string `toml:"-"`
}

// Run holds the [run] section.
type Run struct {
	Input string `toml:"input"` // default READ source, relative to Dir
	Trace bool   `toml:"trace"`
}

// Log holds the [log] section.
type Log struct {
	Verbose bool `toml:"verbose"`
	Color   bool `toml:"color"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Log: Log{Color: true}}
}

// Load reads the configuration file at path. Keys the file sets override
// the defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, interpreter.Errorf(interpreter.KindArgumentUsage, "cannot read %s: %v", path, err)
	}

	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, interpreter.Errorf(interpreter.KindArgumentUsage, "parse error in %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for n, k := range undecoded {
			keys[n] = k.String()
		}
		return nil, interpreter.Errorf(interpreter.KindArgumentUsage, "unknown keys in %s: %s",
			path, strings.Join(keys, ", "))
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, interpreter.Errorf(interpreter.KindArgumentUsage, "cannot resolve path %s: %v", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir looking for ippvm.toml. When none is
// found it returns the defaults.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, interpreter.Errorf(interpreter.KindArgumentUsage, "cannot resolve path %s: %v", startDir, err)
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// InputPath returns the configured input file resolved against the
// directory of the configuration file, or "" when none is set.
func (c *Config) InputPath() string {
	if c.Run.Input == "" || filepath.IsAbs(c.Run.Input) || c.Dir == "" {
		return c.Run.Input
	}
	return filepath.Join(c.Dir, c.Run.Input)
}
