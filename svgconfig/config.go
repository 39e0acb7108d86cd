// Package svgconfig handles the layout display configuration, stored
// as a YAML file.
package svgconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/benoitkugler/svglayout/svgregion"
	"gopkg.in/yaml.v3"
)

// EnglishStenotype is the name of the system displayed by default.
const EnglishStenotype = "English Stenotype"

// Config is the top-level configuration.
type Config struct {
	// ForceRepaint alternates the width of presented frames by one
	// pixel, so that window shadows are redrawn (macOS).
	ForceRepaint bool              `yaml:"force_repaint"`
	Systems      map[string]System `yaml:"systems,omitempty"`
}

// System is the layout configuration of one steno system.
type System struct {
	SVG    string `yaml:"svg,omitempty"`    // layout path, possibly a resource path
	KeyMap string `yaml:"keymap,omitempty"` // key table file, or builtin:<name>
	Scale  int    `yaml:"scale,omitempty"`  // percent
}

// Default returns the configuration used when none is saved.
func Default() *Config {
	return &Config{
		ForceRepaint: runtime.GOOS == "darwin",
		Systems:      make(map[string]System),
	}
}

// DefaultPath returns the location of the configuration file
// in the user configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "svgld", "config.yaml"), nil
}

// Load reads the configuration file at path.
// A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	// fields missing from the file keep their default
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("svgconfig: %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Systems == nil {
		c.Systems = make(map[string]System)
	}
	for name, sys := range c.Systems {
		c.Systems[name] = sys.normalized()
	}
}

func (s System) normalized() System {
	if s.Scale <= 0 {
		s.Scale = svgregion.DefaultScale
	}
	s.Scale = svgregion.ClampScale(s.Scale)
	return s
}

// Save writes c to path, replacing the previous file only once
// the new one is complete.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".svgld-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after the rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Copy returns a deep copy of c.
func (c *Config) Copy() *Config {
	out := &Config{ForceRepaint: c.ForceRepaint, Systems: make(map[string]System, len(c.Systems))}
	for name, sys := range c.Systems {
		out.Systems[name] = sys
	}
	return out
}

// System returns the configuration of the system name,
// if there is one.
func (c *Config) System(name string) (System, bool) {
	sys, ok := c.Systems[name]
	return sys, ok
}

// SetSystem stores the configuration of the system name.
// A zero scale is replaced by the default one.
func (c *Config) SetSystem(name string, sys System) {
	if c.Systems == nil {
		c.Systems = make(map[string]System)
	}
	c.Systems[name] = sys.normalized()
}
