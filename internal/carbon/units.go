// Package carbon computes embodied-carbon estimates for building elements
// by combining extracted material quantities with carbon-factor lookups.
package carbon

import "strings"

// Unit is the measurement unit of an extracted or converted quantity.
type Unit string

const (
	// UnitVolume is cubic metres (m³).
	UnitVolume Unit = "m3"

	// UnitMass is kilograms.
	UnitMass Unit = "kg"

	// UnitArea is square metres (m²).
	UnitArea Unit = "m2"

	// UnitCount is a plain piece count.
	UnitCount Unit = "count"
)

// ParseUnit maps a factor-database unit string to a Unit. Unrecognized
// units are passed through uninterpreted so their factors can still be
// applied by direct multiplication.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m3", "m^3", "m³":
		return UnitVolume
	case "kg":
		return UnitMass
	case "m2", "m^2", "m²":
		return UnitArea
	case "count", "pcs", "nr":
		return UnitCount
	default:
		return Unit(strings.ToLower(strings.TrimSpace(s)))
	}
}

// ConvertVolumeMass converts between volume and mass using density in
// kg/m³. Returns (converted, true) for the volume↔mass pair and
// (quantity, false) for any other combination, which the caller reports as
// an unconvertible mismatch.
func ConvertVolumeMass(quantity float64, from, to Unit, densityKgM3 float64) (float64, bool) {
	switch {
	case from == to:
		return quantity, true
	case from == UnitVolume && to == UnitMass:
		return quantity * densityKgM3, true
	case from == UnitMass && to == UnitVolume:
		if densityKgM3 <= 0 {
			return quantity, false
		}
		return quantity / densityKgM3, true
	default:
		return quantity, false
	}
}
