// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-celestial/pkg/entity"
)

// Renderer names accepted by DisplayConfig.Renderer.
const (
	RendererEngo     = "engo"
	RendererTUI      = "tui"
	RendererTerminal = "terminal"
	RendererNull     = "null"
)

// Environment variables that override file configuration.
const (
	EnvPlanet   = "CELESTIAL_PLANET"
	EnvTickRate = "CELESTIAL_TICK_RATE"
	EnvRenderer = "CELESTIAL_RENDERER"
	EnvWidth    = "CELESTIAL_WIDTH"
	EnvHeight   = "CELESTIAL_HEIGHT"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config contains configuration for the launch demo
type Config struct {
	Planet   string         `json:"planet" yaml:"planet"`
	Controls ControlsConfig `json:"controls" yaml:"controls"`
	Display  DisplayConfig  `json:"display" yaml:"display"`
	Camera   CameraConfig   `json:"camera" yaml:"camera"`
}

// SliderConfig describes the range and starting value of one control
type SliderConfig struct {
	Label   string  `json:"label" yaml:"label"`
	Unit    string  `json:"unit" yaml:"unit"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Step    float64 `json:"step" yaml:"step"`
	Default float64 `json:"default" yaml:"default"`
}

// ControlsConfig contains the five launch controls
type ControlsConfig struct {
	Velocity SliderConfig `json:"velocity" yaml:"velocity"`
	Mass     SliderConfig `json:"mass" yaml:"mass"`
	Friction SliderConfig `json:"friction" yaml:"friction"`
	Volume   SliderConfig `json:"volume" yaml:"volume"`
	Angle    SliderConfig `json:"angle" yaml:"angle"`
}

// DisplayConfig contains presentation settings
type DisplayConfig struct {
	Renderer      string  `json:"renderer" yaml:"renderer"`
	Width         int     `json:"width" yaml:"width"`
	Height        int     `json:"height" yaml:"height"`
	TickRate      float64 `json:"tickRate" yaml:"tickRate"` // steps per second, 0 = unpaced
	TerminalCols  int     `json:"terminalCols" yaml:"terminalCols"`
	TerminalRows  int     `json:"terminalRows" yaml:"terminalRows"`
	TerminalScale float64 `json:"terminalScale" yaml:"terminalScale"` // meters per cell
}

// CameraConfig contains follow-camera settings
type CameraConfig struct {
	OffsetX   float64 `json:"offsetX" yaml:"offsetX"`
	OffsetY   float64 `json:"offsetY" yaml:"offsetY"`
	Frequency float64 `json:"frequency" yaml:"frequency"` // spring angular frequency
	Damping   float64 `json:"damping" yaml:"damping"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads a configuration from a JSON or YAML file. Fields missing
// from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, choosing the format by extension
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the classic slider layout: Earth, 24 m/s at 45°.
func DefaultConfig() *Config {
	return &Config{
		Planet: entity.DefaultPlanet,
		Controls: ControlsConfig{
			Velocity: SliderConfig{Label: "Initial Velocity", Unit: "m/s", Min: 5, Max: 50, Step: 1, Default: 24},
			Mass:     SliderConfig{Label: "Mass", Unit: "kg", Min: 0.1, Max: 10, Step: 0.1, Default: 1},
			Friction: SliderConfig{Label: "Friction", Unit: "", Min: 0, Max: 0.2, Step: 0.01, Default: 0.01},
			Volume:   SliderConfig{Label: "Volume", Unit: "m³", Min: 0.1, Max: 5, Step: 0.1, Default: 1},
			Angle:    SliderConfig{Label: "Launch Angle", Unit: "degrees", Min: 10, Max: 80, Step: 1, Default: 45},
		},
		Display: DisplayConfig{
			Renderer:      RendererEngo,
			Width:         800,
			Height:        500,
			TickRate:      100,
			TerminalCols:  78,
			TerminalRows:  20,
			TerminalScale: 1,
		},
		Camera: CameraConfig{
			OffsetX:   10,
			OffsetY:   2,
			Frequency: 6,
			Damping:   1,
		},
	}
}

// ApplyEnv overrides configuration values from CELESTIAL_* environment
// variables. Unset variables leave the configuration untouched.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPlanet); v != "" {
		c.Planet = v
	}
	if v := os.Getenv(EnvRenderer); v != "" {
		c.Display.Renderer = strings.ToLower(v)
	}
	if v := os.Getenv(EnvTickRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTickRate, err)
		}
		c.Display.TickRate = rate
	}
	for name, dst := range map[string]*int{EnvWidth: &c.Display.Width, EnvHeight: &c.Display.Height} {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = n
		}
	}
	return nil
}

// LoadConfigFromEnv returns the default configuration with environment overrides applied.
func LoadConfigFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// Validate checks that the configuration can drive a simulation.
func (c *Config) Validate() error {
	if _, err := entity.LookupPlanet(c.Planet); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sliders := []struct {
		name string
		s    SliderConfig
	}{
		{"velocity", c.Controls.Velocity},
		{"mass", c.Controls.Mass},
		{"friction", c.Controls.Friction},
		{"volume", c.Controls.Volume},
		{"angle", c.Controls.Angle},
	}
	for _, sc := range sliders {
		if err := sc.s.validate(); err != nil {
			return fmt.Errorf("%w: %s slider: %v", ErrInvalidConfig, sc.name, err)
		}
	}
	if c.Controls.Velocity.Min <= 0 {
		return fmt.Errorf("%w: velocity must stay positive", ErrInvalidConfig)
	}
	if c.Controls.Angle.Min <= 0 || c.Controls.Angle.Max >= 90 {
		return fmt.Errorf("%w: angle range must lie strictly between 0 and 90 degrees", ErrInvalidConfig)
	}
	if c.Controls.Friction.Min < 0 || c.Controls.Friction.Max >= 1 {
		return fmt.Errorf("%w: friction range must lie within [0, 1)", ErrInvalidConfig)
	}
	if c.Controls.Mass.Min <= 0 || c.Controls.Volume.Min <= 0 {
		return fmt.Errorf("%w: mass and volume must stay positive", ErrInvalidConfig)
	}

	switch c.Display.Renderer {
	case RendererEngo, RendererTUI, RendererTerminal, RendererNull:
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidConfig, c.Display.Renderer)
	}
	if c.Display.TickRate < 0 {
		return fmt.Errorf("%w: tick rate cannot be negative", ErrInvalidConfig)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive", ErrInvalidConfig)
	}
	if c.Display.TerminalCols <= 0 || c.Display.TerminalRows <= 0 || c.Display.TerminalScale <= 0 {
		return fmt.Errorf("%w: terminal view must have positive size and scale", ErrInvalidConfig)
	}
	if c.Camera.Frequency <= 0 || c.Camera.Damping < 0 {
		return fmt.Errorf("%w: camera spring needs positive frequency and non-negative damping", ErrInvalidConfig)
	}

	return nil
}

func (s SliderConfig) validate() error {
	if s.Min >= s.Max {
		return fmt.Errorf("min %g must be below max %g", s.Min, s.Max)
	}
	if s.Step <= 0 {
		return fmt.Errorf("step %g must be positive", s.Step)
	}
	if s.Default < s.Min || s.Default > s.Max {
		return fmt.Errorf("default %g outside [%g, %g]", s.Default, s.Min, s.Max)
	}
	return nil
}
