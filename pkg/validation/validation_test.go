package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/entity"
	"github.com/opd-ai/go-celestial/pkg/physics"
)

func validParams() physics.Parameters {
	return physics.Parameters{
		Planet:             "Earth",
		InitialSpeed:       24,
		LaunchAngleDegrees: 45,
		Mass:               1,
		Friction:           0.01,
		Volume:             1,
		Gravity:            9.8,
	}
}

func TestValidateValue(t *testing.T) {
	slider := config.SliderConfig{Min: 5, Max: 50, Step: 1}
	tests := []struct {
		name        string
		value       float64
		wantErr     bool
		errContains string
	}{
		{name: "inside", value: 24},
		{name: "lower edge", value: 5},
		{name: "upper edge", value: 50},
		{name: "too low", value: 4.9, wantErr: true, errContains: "between 5 and 50"},
		{name: "too high", value: 51, wantErr: true, errContains: "between 5 and 50"},
		{name: "not a number", value: math.NaN(), wantErr: true, errContains: "finite"},
		{name: "infinite", value: math.Inf(1), wantErr: true, errContains: "finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue("velocity", tt.value, slider)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Errorf("expected ErrOutOfRange, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err, tt.errContains)
				}
			}
		})
	}
}

func TestValidateParameters(t *testing.T) {
	controls := config.DefaultConfig().Controls

	tests := []struct {
		name        string
		mutate      func(p *physics.Parameters)
		wantErr     bool
		errContains string
	}{
		{name: "defaults", mutate: func(p *physics.Parameters) {}},
		{name: "moon", mutate: func(p *physics.Parameters) { p.Planet = "Moon"; p.Gravity = 1.62 }},
		{name: "angle too steep", mutate: func(p *physics.Parameters) { p.LaunchAngleDegrees = 85 }, wantErr: true, errContains: "angle"},
		{name: "friction too high", mutate: func(p *physics.Parameters) { p.Friction = 0.5 }, wantErr: true, errContains: "friction"},
		{name: "zero volume", mutate: func(p *physics.Parameters) { p.Volume = 0 }, wantErr: true, errContains: "volume"},
		{name: "unknown planet", mutate: func(p *physics.Parameters) { p.Planet = "Vulcan" }, wantErr: true, errContains: "unknown planet"},
		{name: "gravity mismatch", mutate: func(p *physics.Parameters) { p.Gravity = 3.7 }, wantErr: true, errContains: "does not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := ValidateParameters(p, controls)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateParameters() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err, tt.errContains)
			}
		})
	}
}

func TestValidateParameters_ReportsEveryProblem(t *testing.T) {
	p := validParams()
	p.InitialSpeed = 100
	p.Mass = 0
	p.Planet = "Pluto"

	err := ValidateParameters(p, config.DefaultConfig().Controls)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrOutOfRange) || !errors.Is(err, entity.ErrUnknownPlanet) {
		t.Errorf("joined error should wrap both causes: %v", err)
	}
	for _, want := range []string{"velocity", "mass", "Pluto"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}
