package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the viewer and the
// headless binaries.
type Config struct {
	Topology     string
	Radius       float64
	Subdivisions int
	Seed         int64
	TPS          int
	Size         int
	HUDWidth     int
	LogLevel     string
	Settings     Settings
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Topology:     "geodesic",
		Radius:       1,
		Subdivisions: 3,
		Seed:         1337,
		TPS:          60,
		Size:         640,
		HUDWidth:     260,
		LogLevel:     "info",
		Settings:     Settings{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Topology, "topology", c.Topology, "topology provider")
	fs.Float64Var(&c.Radius, "radius", c.Radius, "sphere radius")
	fs.IntVar(&c.Subdivisions, "subdivisions", c.Subdivisions, "geodesic subdivision level")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.Size, "size", c.Size, "sphere view size in pixels")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.Var(c.Settings, "set", "component setting as key=value (repeatable)")
}

// Options merges the topology flags and every -set pair into one option
// map. Explicit -set pairs win.
func (c *Config) Options() map[string]string {
	out := map[string]string{
		"radius":       fmt.Sprint(c.Radius),
		"subdivisions": fmt.Sprint(c.Subdivisions),
		"seed":         fmt.Sprint(c.Seed),
	}
	for k, v := range c.Settings {
		out[k] = v
	}
	return out
}

// Settings collects repeated key=value flags.
type Settings map[string]string

func (s Settings) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (s Settings) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("setting %q: want key=value", v)
	}
	s[key] = strings.TrimSpace(value)
	return nil
}
