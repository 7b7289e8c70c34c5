// Package config handles loading and saving mesh tool settings.
package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/vbomesh/pkg/mesh"
)

// Config holds all settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Viewer  ViewerConfig  `yaml:"viewer" toml:"viewer"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// MeshConfig selects the optional load stages.
type MeshConfig struct {
	Recenter         bool `yaml:"recenter" toml:"recenter"`
	LoadTexCoords    bool `yaml:"load_texcoords" toml:"load_texcoords"`
	GenerateTangents bool `yaml:"generate_tangents" toml:"generate_tangents"`
}

// ViewerConfig holds display settings for meshview.
type ViewerConfig struct {
	Width      int        `yaml:"width" toml:"width"`
	Height     int        `yaml:"height" toml:"height"`
	Fullscreen bool       `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool       `yaml:"vsync" toml:"vsync"`
	Wireframe  bool       `yaml:"wireframe" toml:"wireframe"`
	FOV        float32    `yaml:"fov" toml:"fov"` // vertical, degrees
	Background [3]float32 `yaml:"background" toml:"background"`
}

// WatchConfig controls reloading the mesh when its file changes.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled" toml:"enabled"`
	DebounceMs int  `yaml:"debounce_ms" toml:"debounce_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Recenter:         false,
			LoadTexCoords:    false,
			GenerateTangents: false,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Background: [3]float32{0.1, 0.1, 0.15},
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 200,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// MeshOptions converts the mesh settings to loader options.
func (c *Config) MeshOptions(log *zap.Logger) mesh.Options {
	return mesh.Options{
		Recenter:         c.Mesh.Recenter,
		LoadTexCoords:    c.Mesh.LoadTexCoords,
		GenerateTangents: c.Mesh.GenerateTangents,
		Logger:           log,
	}
}
