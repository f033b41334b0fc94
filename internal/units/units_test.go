package units

import (
	"math"
	"testing"
)

func TestConvertDistance(t *testing.T) {
	tests := []struct {
		name       string
		distanceFt float64
		units      string
		expected   float64
	}{
		{"100 ft to m", 100.0, Meters, 30.48},
		{"100 ft to ft", 100.0, Feet, 100.0},
		{"unknown units default to ft", 100.0, "unknown", 100.0},
		{"0 ft to m", 0.0, Meters, 0.0},
		{"one joint 40 ft to m", 40.0, Meters, 12.192},
		{"negative offset -3 ft to m", -3.0, Meters, -0.9144},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertDistance(tt.distanceFt, tt.units)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ConvertDistance(%f, %s) = %f, want %f", tt.distanceFt, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid ft", Feet, true},
		{"valid m", Meters, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "FT", false},
		{"case sensitive", "M", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	expected := "ft, m"
	result := GetValidUnitsString()
	if result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}
