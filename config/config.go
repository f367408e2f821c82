package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the game's runtime configuration.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Level     string          `yaml:"level"`
	Season    SeasonConfig    `yaml:"season"`
	Materials MaterialsConfig `yaml:"materials"`
	Import    ImportConfig    `yaml:"import"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
}

// SeasonConfig configures season timers. Length applies to the timer the game
// creates when a level has none, and to level timers that do not set
// season_length.
type SeasonConfig struct {
	Length  float64 `yaml:"length"`
	Enabled *bool   `yaml:"enabled"`
	Param   string  `yaml:"param"`
}

type MaterialsConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

type ImportConfig struct {
	Scripts []string `yaml:"scripts"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig loads the configuration from a YAML file and fills in defaults
// for anything it leaves out.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", filename, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return &c, nil
}

// SeasonEnabled reports whether season timers start enabled.
func (c *Config) SeasonEnabled() bool {
	if c == nil || c.Season.Enabled == nil {
		return true
	}
	return *c.Season.Enabled
}

func (c *Config) applyDefaults() {
	if c.Display.ScreenWidth <= 0 {
		c.Display.ScreenWidth = 1280
	}
	if c.Display.ScreenHeight <= 0 {
		c.Display.ScreenHeight = 720
	}
	if c.Display.WindowTitle == "" {
		c.Display.WindowTitle = "seasons"
	}
	if c.Level == "" {
		c.Level = "meadow"
	}
	if c.Season.Length == 0 {
		c.Season.Length = 5.0
	}
	if c.Season.Param == "" {
		c.Season.Param = "_UseSummerTexture"
	}
	if c.Materials.Dir == "" {
		c.Materials.Dir = "materials"
	}
}

func (c *Config) validate() error {
	if c.Season.Length < 0 {
		return fmt.Errorf("season.length must be positive, got %v", c.Season.Length)
	}
	return nil
}
