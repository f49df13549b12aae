// Package control holds the user-facing launch controls: five range-bound
// sliders and the planet menu. A Panel turns the current control values into
// an immutable physics.Parameters snapshot when a run starts.
package control

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-celestial/pkg/config"
)

// Slider is a bounded numeric control that snaps to a fixed increment.
type Slider struct {
	Name  string
	Label string
	Unit  string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

// NewSlider builds a slider from its configuration, starting at the default.
func NewSlider(name string, cfg config.SliderConfig) *Slider {
	s := &Slider{
		Name:  name,
		Label: cfg.Label,
		Unit:  cfg.Unit,
		Min:   cfg.Min,
		Max:   cfg.Max,
		Step:  cfg.Step,
	}
	s.Set(cfg.Default)
	return s
}

// Set clamps v into [Min, Max] and snaps it to the nearest increment.
// NaN leaves the value unchanged. It returns the stored value.
func (s *Slider) Set(v float64) float64 {
	if math.IsNaN(v) {
		return s.Value
	}
	v = math.Max(s.Min, math.Min(s.Max, v))
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		v = math.Min(s.Max, v)
	}
	// keep 0.1 increments printable as 0.3 instead of 0.30000000000000004
	s.Value = math.Round(v*1e9) / 1e9
	return s.Value
}

// Nudge moves the slider by n increments.
func (s *Slider) Nudge(n int) float64 {
	return s.Set(s.Value + float64(n)*s.Step)
}

// Fraction reports the position of the value within the range, 0..1.
func (s *Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// String renders "Label: value unit".
func (s *Slider) String() string {
	if s.Unit == "" {
		return fmt.Sprintf("%s: %g", s.Label, s.Value)
	}
	return fmt.Sprintf("%s: %g %s", s.Label, s.Value, s.Unit)
}
