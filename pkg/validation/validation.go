// Package validation checks launch parameters that arrive from outside the
// slider controls, such as command-line flags, against the configured ranges.
package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

// ErrOutOfRange is wrapped when a value falls outside its slider range.
var ErrOutOfRange = errors.New("value out of range")

// ValidateValue checks a single named value against a slider range.
func ValidateValue(name string, value float64, s config.SliderConfig) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrOutOfRange, name)
	}
	if value < s.Min || value > s.Max {
		return fmt.Errorf("%w: %s %g (must be between %g and %g)", ErrOutOfRange, name, value, s.Min, s.Max)
	}
	return nil
}

// ValidateParameters checks every value of a snapshot against the controls
// and confirms that the gravity matches the named planet.
func ValidateParameters(p physics.Parameters, controls config.ControlsConfig) error {
	checks := []struct {
		name   string
		value  float64
		slider config.SliderConfig
	}{
		{"velocity", p.InitialSpeed, controls.Velocity},
		{"mass", p.Mass, controls.Mass},
		{"friction", p.Friction, controls.Friction},
		{"volume", p.Volume, controls.Volume},
		{"angle", p.LaunchAngleDegrees, controls.Angle},
	}
	var errs []error
	for _, c := range checks {
		if err := ValidateValue(c.name, c.value, c.slider); err != nil {
			errs = append(errs, err)
		}
	}

	planet, err := entity.LookupPlanet(p.Planet)
	if err != nil {
		errs = append(errs, err)
	} else if p.Gravity != planet.Gravity {
		errs = append(errs, fmt.Errorf("gravity %g does not match %s (%g m/s²)", p.Gravity, planet.Name, planet.Gravity))
	}

	return errors.Join(errs...)
}
