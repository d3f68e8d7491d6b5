// Package model defines the building-element data model and the source-model
// reader boundary. Elements are read once from an IFC element dump produced
// by upstream tooling and held read-only for the duration of a run.
package model

// Element is one building element instance from the source model.
// Immutable once read; the calculation core references elements and never
// copies or mutates them.
type Element struct {
	// GlobalID is the IFC globally-unique identifier of the element.
	GlobalID string `json:"global_id"`

	// Name is the human-readable element name (may be empty).
	Name string `json:"name"`

	// IfcType is the IFC entity tag, e.g. "IfcWall" or "IfcBeam".
	IfcType string `json:"ifc_type"`

	// PropertySets holds flattened numeric property-set values keyed by
	// property name (e.g. "NetVolume", "Length").
	PropertySets map[string]float64 `json:"property_sets,omitempty"`

	// QuantitySets holds flattened numeric quantity-set values keyed by
	// quantity name (e.g. "Volume").
	QuantitySets map[string]float64 `json:"quantity_sets,omitempty"`

	// Material is the element's material association, or nil when the
	// source model carries none.
	Material *MaterialAssociation `json:"material,omitempty"`
}

// MaterialAssociation is the material the source model associates with an
// element. Density may be zero when the model does not declare one.
type MaterialAssociation struct {
	// Name is the declared material name, e.g. "concrete".
	Name string `json:"name"`

	// DensityKgM3 is the declared density in kg/m³ (0 when unknown).
	DensityKgM3 float64 `json:"density_kg_m3,omitempty"`
}

// PsetValue returns the named property-set value.
// Returns (value, true) if present, (0, false) if not present.
func (e Element) PsetValue(name string) (float64, bool) {
	v, ok := e.PropertySets[name]
	return v, ok
}

// QsetValue returns the named quantity-set value.
// Returns (value, true) if present, (0, false) if not present.
func (e Element) QsetValue(name string) (float64, bool) {
	v, ok := e.QuantitySets[name]
	return v, ok
}
