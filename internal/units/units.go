// Package units provides shared constants and validation for station
// distance units used in reports.
package units

// Unit constants
const (
	Feet   = "ft"
	Meters = "m"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Feet, Meters}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "ft, m"
}

// ConvertDistance converts a distance from feet to the target units.
// Stations are computed and stored in feet.
func ConvertDistance(distanceFt float64, targetUnits string) float64 {
	switch targetUnits {
	case Meters:
		return distanceFt * 0.3048 // ft to m
	case Feet:
		return distanceFt // no conversion needed
	default:
		return distanceFt // default to feet if unknown unit
	}
}
