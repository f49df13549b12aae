// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

func TestVector2D_Add(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector2D
		v2       Vector2D
		expected Vector2D
	}{
		{
			name:     "positive_vectors",
			v1:       Vector2D{X: 3, Y: 4},
			v2:       Vector2D{X: 1, Y: 2},
			expected: Vector2D{X: 4, Y: 6},
		},
		{
			name:     "mixed_signs",
			v1:       Vector2D{X: 5, Y: -3},
			v2:       Vector2D{X: -2, Y: 7},
			expected: Vector2D{X: 3, Y: 4},
		},
		{
			name:     "zero_vector",
			v1:       Vector2D{},
			v2:       Vector2D{X: 5, Y: -3},
			expected: Vector2D{X: 5, Y: -3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Add(tt.v2)
			if result != tt.expected {
				t.Errorf("Add() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2D_Scale(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		factor   float64
		expected Vector2D
	}{
		{"positive_scale", Vector2D{X: 3, Y: 4}, 2, Vector2D{X: 6, Y: 8}},
		{"negative_scale", Vector2D{X: 3, Y: 4}, -2, Vector2D{X: -6, Y: -8}},
		{"zero_scale", Vector2D{X: 3, Y: 4}, 0, Vector2D{}},
		{"time_step", Vector2D{X: 100, Y: -50}, 0.01, Vector2D{X: 1, Y: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Scale(tt.factor)
			if math.Abs(result.X-tt.expected.X) > 1e-12 || math.Abs(result.Y-tt.expected.Y) > 1e-12 {
				t.Errorf("Scale() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(Radians(45), 24)
	want := 24 / math.Sqrt2
	if math.Abs(v.X-want) > 1e-9 || math.Abs(v.Y-want) > 1e-9 {
		t.Errorf("FromAngle(45°, 24) = %v, expected (%v, %v)", v, want, want)
	}

	v = FromAngle(Radians(90), 10)
	if v.X < 0 || math.Abs(v.X) > 1e-9 || math.Abs(v.Y-10) > 1e-9 {
		t.Errorf("FromAngle(90°, 10) = %v, expected (~0, 10)", v)
	}
}
