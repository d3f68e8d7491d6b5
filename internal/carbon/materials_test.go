package carbon

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/buildfootprint/ifc-carbon/internal/model"
)

func TestMaterialResolver_Resolve(t *testing.T) {
	r := NewMaterialResolver(nil, zerolog.Nop())

	tests := []struct {
		name          string
		element       model.Element
		wantMaterial  string
		wantDensity   float64
		wantDefaulted bool
	}{
		{
			name: "explicit association wins over default table",
			element: model.Element{
				IfcType:  "IfcWall",
				Material: &model.MaterialAssociation{Name: "brick", DensityKgM3: 1800},
			},
			wantMaterial: "brick",
			wantDensity:  1800,
		},
		{
			name: "association without density keeps name, borrows type density",
			element: model.Element{
				IfcType:  "IfcBeam",
				Material: &model.MaterialAssociation{Name: "steel"},
			},
			wantMaterial: "steel",
			wantDensity:  7850,
		},
		{
			name:          "wall without association defaults to concrete",
			element:       model.Element{IfcType: "IfcWall"},
			wantMaterial:  "concrete",
			wantDensity:   2400,
			wantDefaulted: true,
		},
		{
			name:          "door defaults to timber",
			element:       model.Element{IfcType: "IfcDoor"},
			wantMaterial:  "timber",
			wantDensity:   600,
			wantDefaulted: true,
		},
		{
			name:          "window defaults to aluminum",
			element:       model.Element{IfcType: "window"},
			wantMaterial:  "aluminum",
			wantDensity:   2700,
			wantDefaulted: true,
		},
		{
			name:          "unknown type falls back to generic concrete",
			element:       model.Element{IfcType: "IfcFlowTerminal"},
			wantMaterial:  "concrete",
			wantDensity:   2400,
			wantDefaulted: true,
		},
		{
			name: "blank association name counts as absent",
			element: model.Element{
				IfcType:  "IfcRailing",
				Material: &model.MaterialAssociation{Name: "   "},
			},
			wantMaterial:  "steel",
			wantDensity:   7850,
			wantDefaulted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.element)
			assert.Equal(t, tt.wantMaterial, got.Name)
			assert.InDelta(t, tt.wantDensity, got.DensityKgM3, 1e-9)
			assert.Equal(t, tt.wantDefaulted, got.Defaulted)
			assert.Greater(t, got.DensityKgM3, 0.0, "density must always be positive")
		})
	}
}

func TestMaterialResolver_PreferredUnit(t *testing.T) {
	r := NewMaterialResolver(nil, zerolog.Nop())

	assert.Equal(t, UnitVolume, r.PreferredUnit("IfcWall"))
	assert.Equal(t, UnitVolume, r.PreferredUnit("IfcSlab"))
	assert.Equal(t, UnitMass, r.PreferredUnit("IfcBeam"))
	assert.Equal(t, UnitMass, r.PreferredUnit("IfcColumn"))
	assert.Equal(t, UnitMass, r.PreferredUnit("IfcDoor"))
	assert.Equal(t, UnitMass, r.PreferredUnit("IfcWindow"))
	assert.Equal(t, UnitVolume, r.PreferredUnit("IfcBuildingElementProxy"))
}

func TestMaterialResolver_Overrides(t *testing.T) {
	r := NewMaterialResolver(map[string]DefaultMaterial{
		"IfcWall": {Material: "rammed earth", DensityKgM3: 1900, PreferredUnit: UnitVolume},
	}, zerolog.Nop())

	got := r.Resolve(model.Element{IfcType: "wall"})
	assert.Equal(t, "rammed earth", got.Name)
	assert.InDelta(t, 1900, got.DensityKgM3, 1e-9)

	// Other types keep their table defaults.
	assert.Equal(t, "concrete", r.Resolve(model.Element{IfcType: "IfcSlab"}).Name)
}

func TestDefaultMaterialFor(t *testing.T) {
	dm := DefaultMaterialFor("IfcStair")
	assert.Equal(t, "concrete", dm.Material)
	assert.InDelta(t, 2400, dm.DensityKgM3, 1e-9)
	assert.Equal(t, UnitVolume, dm.PreferredUnit)
}
