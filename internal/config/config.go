package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig is wrapped by every range check in Validate.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix namespaces every environment override.
const EnvPrefix = "SCROLLRIG_"

type Config struct {
	ScenePath    string  `env:"SCENE"`
	OutputDir    string  `env:"OUTPUT_DIR" envDefault:"output"`
	Shot         string  `env:"SHOT" envDefault:"follow"`
	Pattern      string  `env:"PATTERN" envDefault:"wave-z"`
	RevealStyle  string  `env:"REVEAL" envDefault:"grow"`
	Focus        int     `env:"FOCUS" envDefault:"0"`
	RigRate      float32 `env:"RIG_RATE" envDefault:"6"`
	Tension      float32 `env:"TENSION" envDefault:"0.4"`
	Seed         uint64  `env:"SEED" envDefault:"1"`
	GridSize     int     `env:"GRID_SIZE" envDefault:"40"`
	GridSpacing  float32 `env:"GRID_SPACING" envDefault:"3"`
	Variants     int     `env:"VARIANTS" envDefault:"4"`
	FPS          int     `env:"FPS" envDefault:"60"`
	Frames       int     `env:"FRAMES" envDefault:"600"`
	Keyframes    int     `env:"KEYFRAMES" envDefault:"400"`
	Detector     string  `env:"DETECTOR" envDefault:"jump"`
	Workers      int     `env:"WORKERS" envDefault:"0"`
	Width        int     `env:"WIDTH" envDefault:"1024"`
	Height       int     `env:"HEIGHT" envDefault:"1024"`
	ShowStats    bool    `env:"STATS"`
	LogLevel     string  `env:"LOG_LEVEL" envDefault:"info"`
	BuildVersion string
}

// Load returns the defaults with SCROLLRIG_* environment overrides applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks numeric ranges. Enumerations are checked by the packages
// that own them.
func (c Config) Validate() error {
	switch {
	case c.RigRate <= 0:
		return fmt.Errorf("%w: rig rate must be positive, got %v", ErrInvalidConfig, c.RigRate)
	case c.Tension < 0 || c.Tension > 1:
		return fmt.Errorf("%w: tension must be within [0,1], got %v", ErrInvalidConfig, c.Tension)
	case c.Focus < 0:
		return fmt.Errorf("%w: focus index must not be negative, got %d", ErrInvalidConfig, c.Focus)
	case c.GridSize < 1:
		return fmt.Errorf("%w: grid size must be at least 1, got %d", ErrInvalidConfig, c.GridSize)
	case c.GridSpacing <= 0:
		return fmt.Errorf("%w: grid spacing must be positive, got %v", ErrInvalidConfig, c.GridSpacing)
	case c.Variants < 1:
		return fmt.Errorf("%w: variants must be at least 1, got %d", ErrInvalidConfig, c.Variants)
	case c.FPS < 1:
		return fmt.Errorf("%w: fps must be at least 1, got %d", ErrInvalidConfig, c.FPS)
	case c.Frames < 1:
		return fmt.Errorf("%w: frames must be at least 1, got %d", ErrInvalidConfig, c.Frames)
	case c.Keyframes < 3:
		return fmt.Errorf("%w: keyframes must be at least 3, got %d", ErrInvalidConfig, c.Keyframes)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.Width < 16 || c.Height < 16:
		return fmt.Errorf("%w: preview must be at least 16x16, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}
