package carbon

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/buildfootprint/ifc-carbon/internal/factors"
	"github.com/buildfootprint/ifc-carbon/internal/model"
)

// ResolvedMaterial is the material assigned to an element for one
// calculation pass. Density is always strictly positive so volume↔mass
// conversion is safe downstream.
type ResolvedMaterial struct {
	// Name is the material name, e.g. "concrete".
	Name string

	// DensityKgM3 is the material density in kg/m³.
	DensityKgM3 float64

	// Defaulted is set when the material came from the per-type default
	// table rather than the element's own association.
	Defaulted bool
}

// DefaultMaterial is one entry of the per-type default-material table.
type DefaultMaterial struct {
	Material      string
	DensityKgM3   float64
	PreferredUnit Unit
}

// defaultMaterials maps normalized IFC type tags to a canonical material,
// density and preferred factor unit. Concrete-type elements prefer volume
// factors; steel, timber and aluminum elements prefer mass factors.
//
// Densities are standard engineering values (kg/m³).
var defaultMaterials = map[string]DefaultMaterial{
	"wall":                 {Material: "concrete", DensityKgM3: 2400, PreferredUnit: UnitVolume},
	"slab":                 {Material: "concrete", DensityKgM3: 2400, PreferredUnit: UnitVolume},
	"beam":                 {Material: "steel", DensityKgM3: 7850, PreferredUnit: UnitMass},
	"column":               {Material: "steel", DensityKgM3: 7850, PreferredUnit: UnitMass},
	"roof":                 {Material: "concrete", DensityKgM3: 2400, PreferredUnit: UnitVolume},
	"stair":                {Material: "concrete", DensityKgM3: 2400, PreferredUnit: UnitVolume},
	"railing":              {Material: "steel", DensityKgM3: 7850, PreferredUnit: UnitMass},
	"door":                 {Material: "timber", DensityKgM3: 600, PreferredUnit: UnitMass},
	"window":               {Material: "aluminum", DensityKgM3: 2700, PreferredUnit: UnitMass},
	"buildingelementproxy": {Material: "concrete", DensityKgM3: 2400, PreferredUnit: UnitVolume},
}

// genericDefault is used for IFC types absent from the table, matching the
// generic-proxy entry so every element gets a positive density.
var genericDefault = DefaultMaterial{Material: "concrete", DensityKgM3: 2400, PreferredUnit: UnitVolume}

// DefaultMaterialFor returns the default-material entry for an IFC type,
// falling back to the generic entry for unknown types.
func DefaultMaterialFor(ifcType string) DefaultMaterial {
	if dm, ok := defaultMaterials[factors.NormalizeType(ifcType)]; ok {
		return dm
	}
	return genericDefault
}

// MaterialResolver determines each element's material name and density,
// preferring the source model's material association and falling back to
// the per-type default table. Overrides replace table entries per type.
type MaterialResolver struct {
	logger    zerolog.Logger
	overrides map[string]DefaultMaterial
}

// NewMaterialResolver creates a resolver. overrides may be nil; keys are
// IFC type tags in any casing.
func NewMaterialResolver(overrides map[string]DefaultMaterial, logger zerolog.Logger) *MaterialResolver {
	normalized := make(map[string]DefaultMaterial, len(overrides))
	for t, dm := range overrides {
		normalized[factors.NormalizeType(t)] = dm
	}
	return &MaterialResolver{logger: logger, overrides: normalized}
}

// Resolve returns the element's material and density. The element's own
// association wins whenever it names a material; its density is kept only
// when strictly positive, otherwise the default table supplies one.
func (r *MaterialResolver) Resolve(el model.Element) ResolvedMaterial {
	def := r.defaultFor(el.IfcType)

	assoc := el.Material
	if assoc == nil || strings.TrimSpace(assoc.Name) == "" {
		return ResolvedMaterial{Name: def.Material, DensityKgM3: def.DensityKgM3, Defaulted: true}
	}

	density := assoc.DensityKgM3
	if density <= 0 {
		r.logger.Debug().Str("global_id", el.GlobalID).Str("material", assoc.Name).
			Float64("default_density", def.DensityKgM3).
			Msg("material association has no density, using type default")
		density = def.DensityKgM3
	}

	return ResolvedMaterial{Name: strings.TrimSpace(assoc.Name), DensityKgM3: density}
}

// PreferredUnit returns the preferred factor unit for an IFC type,
// honoring any override for that type.
func (r *MaterialResolver) PreferredUnit(ifcType string) Unit {
	return r.defaultFor(ifcType).PreferredUnit
}

func (r *MaterialResolver) defaultFor(ifcType string) DefaultMaterial {
	if dm, ok := r.overrides[factors.NormalizeType(ifcType)]; ok {
		return dm
	}
	return DefaultMaterialFor(ifcType)
}
