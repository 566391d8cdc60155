package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/jzhdev/vcanvas/pkg/surface"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given
const DefaultPath = "vcanvas.yaml"

// Config represents the vcanvas.yaml configuration
type Config struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Server ServerConfig `yaml:"server"`
	TUI    TUIConfig    `yaml:"tui"`
}

// CanvasConfig mirrors surface.Config. Zero bounds mean defaults.
//
// Resizable and Zoomable default to true when the file leaves them out.
// Resizable stays off if either per-axis flag is set, since it would
// override them.
type CanvasConfig struct {
	Width                 float64 `yaml:"width"`
	Height                float64 `yaml:"height"`
	Resizable             *bool   `yaml:"resizable,omitempty"`
	HorizontallyResizable bool    `yaml:"horizontallyResizable"`
	VerticallyResizable   bool    `yaml:"verticallyResizable"`
	MinWidth              float64 `yaml:"minWidth,omitempty"`
	MinHeight             float64 `yaml:"minHeight,omitempty"`
	MaxWidth              float64 `yaml:"maxWidth,omitempty"`
	MaxHeight             float64 `yaml:"maxHeight,omitempty"`
	Zoomable              *bool   `yaml:"zoomable,omitempty"`
	Zoom                  float64 `yaml:"zoom,omitempty"`
}

// ServerConfig contains host page server configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TUIConfig maps surface pixels onto terminal cells
type TUIConfig struct {
	CellWidth  float64 `yaml:"cellWidth"`
	CellHeight float64 `yaml:"cellHeight"`
}

// Surface converts the canvas section for a controller
func (c CanvasConfig) Surface() surface.Config {
	return surface.Config{
		Width:                 c.Width,
		Height:                c.Height,
		Resizable:             isSet(c.Resizable),
		HorizontallyResizable: c.HorizontallyResizable,
		VerticallyResizable:   c.VerticallyResizable,
		MinWidth:              c.MinWidth,
		MinHeight:             c.MinHeight,
		MaxWidth:              c.MaxWidth,
		MaxHeight:             c.MaxHeight,
		Zoomable:              isSet(c.Zoomable),
		Zoom:                  c.Zoom,
	}
}

// Bool returns a pointer to b for the optional flags
func Bool(b bool) *bool { return &b }

func isSet(b *bool) bool { return b != nil && *b }

// Default returns the default configuration: the 500x500 resizable,
// zoomable surface of the example page.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:     500,
			Height:    500,
			Resizable: Bool(true),
			Zoomable:  Bool(true),
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 5173,
		},
		TUI: TUIConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
	}
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML and fills in defaults for missing values
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as YAML
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyDefaults applies default values to missing configuration
func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Canvas.Width == 0 {
		cfg.Canvas.Width = defaults.Canvas.Width
	}
	if cfg.Canvas.Height == 0 {
		cfg.Canvas.Height = defaults.Canvas.Height
	}
	if cfg.Canvas.Resizable == nil && !cfg.Canvas.HorizontallyResizable && !cfg.Canvas.VerticallyResizable {
		cfg.Canvas.Resizable = Bool(*defaults.Canvas.Resizable)
	}
	if cfg.Canvas.Zoomable == nil {
		cfg.Canvas.Zoomable = Bool(*defaults.Canvas.Zoomable)
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaults.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if cfg.TUI.CellWidth == 0 {
		cfg.TUI.CellWidth = defaults.TUI.CellWidth
	}
	if cfg.TUI.CellHeight == 0 {
		cfg.TUI.CellHeight = defaults.TUI.CellHeight
	}
}

// Validate rejects values no surface could use. Size bounds are not checked
// here; the controller clamps them.
func (c *Config) Validate() error {
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("canvas size must not be negative, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.TUI.CellWidth < 0 || c.TUI.CellHeight < 0 {
		return fmt.Errorf("tui cell size must be positive")
	}
	return nil
}

// Addr returns host:port for the server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
