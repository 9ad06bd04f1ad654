// Package config loads axon.yaml, the optional project file that tunes VM
// limits and compiler behavior without passing a long flag list to every
// subcommand.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/axon-lang/axon/internal/vm"
)

// Config mirrors axon.yaml's top-level keys.
type Config struct {
	MaxFrameDepth int  `yaml:"max_frame_depth"`
	Optimize      bool `yaml:"optimize"`
	EnableClear   bool `yaml:"enable_clear"`
}

// Default returns the configuration used when no axon.yaml is present.
func Default() Config {
	return Config{
		MaxFrameDepth: vm.DefaultMaxFrameDepth,
		Optimize:      true,
		EnableClear:   true,
	}
}

// Load reads and parses path, filling in Default() for any field it
// doesn't set. A missing file is not an error — it just yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.MaxFrameDepth <= 0 {
		cfg.MaxFrameDepth = vm.DefaultMaxFrameDepth
	}
	return cfg, nil
}

// VMOptions translates the config into the vm.Option list New expects.
func (c Config) VMOptions() []vm.Option {
	opts := []vm.Option{vm.WithMaxFrameDepth(c.MaxFrameDepth)}
	if !c.EnableClear {
		opts = append(opts, vm.WithClearScreen(func() error { return nil }))
	}
	return opts
}
