package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildfootprint/ifc-carbon/internal/carbon"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRunConfig(t *testing.T) {
	path := writeConfig(t, `
element_types: [wall, slab]
material_overrides:
  IfcWall:
    material: rammed earth
    density_kg_m3: 1900
    unit: m3
exports:
  workbook: false
`)

	cfg, err := loadRunConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"wall", "slab"}, cfg.ElementTypes)
	require.Contains(t, cfg.MaterialOverrides, "IfcWall")
	assert.InDelta(t, 1900, cfg.MaterialOverrides["IfcWall"].DensityKgM3, 1e-9)

	assert.True(t, enabled(cfg.Exports.DetailedCSV), "unset toggle defaults to on")
	assert.True(t, enabled(cfg.Exports.SummaryJSON))
	assert.False(t, enabled(cfg.Exports.Workbook))
}

func TestLoadRunConfig_EmptyPath(t *testing.T) {
	cfg, err := loadRunConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.ElementTypes)
	assert.True(t, enabled(cfg.Exports.DetailedCSV))
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := loadRunConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadRunConfig_InvalidOverride(t *testing.T) {
	path := writeConfig(t, `
material_overrides:
  IfcWall:
    material: ""
    density_kg_m3: 1900
`)

	_, err := loadRunConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive density")
}

func TestRunConfig_OverridesTable(t *testing.T) {
	cfg := RunConfig{
		MaterialOverrides: map[string]MaterialOverride{
			"IfcBeam": {Material: "glulam", DensityKgM3: 500, Unit: "kg"},
			"IfcWall": {Material: "brick", DensityKgM3: 1800},
		},
	}

	table := cfg.overridesTable()
	require.Len(t, table, 2)
	assert.Equal(t, carbon.UnitMass, table["IfcBeam"].PreferredUnit)
	assert.Equal(t, "glulam", table["IfcBeam"].Material)
	// An omitted unit defaults to volume.
	assert.Equal(t, carbon.UnitVolume, table["IfcWall"].PreferredUnit)
}

func TestParseLogLevel(t *testing.T) {
	logger := zerolog.Nop()

	t.Setenv("IFC_CARBON_LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel(logger))

	t.Setenv("IFC_CARBON_LOG_LEVEL", "debug")
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel(logger))

	t.Setenv("IFC_CARBON_LOG_LEVEL", "WARN")
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel(logger))

	t.Setenv("IFC_CARBON_LOG_LEVEL", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel(logger), "invalid level falls back to info")
}
