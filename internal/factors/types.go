// Package factors loads the carbon-factor database and provides
// hierarchical factor lookups by (ifc type, material, unit).
package factors

// Entry is one row of the carbon-factor database.
// Entries are immutable for the duration of a calculation run.
type Entry struct {
	// IfcType is the IFC entity tag the factor applies to (normalized,
	// e.g. "wall").
	IfcType string

	// Material is the material name the factor applies to.
	Material string

	// Unit is the denomination unit of the factor, e.g. "m3" or "kg".
	Unit string

	// Factor is the emission intensity in kgCO2e per Unit.
	Factor float64
}

// MatchTier is the specificity level at which a factor was found.
type MatchTier string

const (
	// MatchExact means ifc type, material and unit all matched.
	MatchExact MatchTier = "exact"

	// MatchMaterialUnit means material and unit matched, any ifc type.
	MatchMaterialUnit MatchTier = "material_unit"

	// MatchMaterialOnly means only the material matched; the entry's own
	// unit denominates the factor and may require conversion downstream.
	MatchMaterialOnly MatchTier = "material_only"

	// MatchNone means no entry matched; the factor defaults to zero.
	MatchNone MatchTier = "none"
)

// Match is the outcome of a factor lookup.
type Match struct {
	// Factor is the matched emission intensity (0 when Tier is MatchNone).
	Factor float64

	// Unit is the denomination unit of the matched entry (empty when Tier
	// is MatchNone).
	Unit string

	// Tier is the specificity level of the match.
	Tier MatchTier
}
