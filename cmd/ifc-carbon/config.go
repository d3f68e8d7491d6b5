package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/buildfootprint/ifc-carbon/internal/carbon"
)

// RunConfig is the optional YAML run configuration. Flags override nothing
// here; the config file carries what has no flag (material overrides) and
// defaults for what does (element filter, export toggles).
type RunConfig struct {
	// ElementTypes restricts the run to the listed IFC types. Empty means
	// all types.
	ElementTypes []string `yaml:"element_types"`

	// MaterialOverrides replaces default-material table entries per IFC
	// type tag.
	MaterialOverrides map[string]MaterialOverride `yaml:"material_overrides"`

	// Exports toggles individual output files. All default to on.
	Exports ExportConfig `yaml:"exports"`
}

// MaterialOverride is one per-type default-material replacement.
type MaterialOverride struct {
	Material    string  `yaml:"material"`
	DensityKgM3 float64 `yaml:"density_kg_m3"`
	// Unit is the preferred factor unit: "m3" or "kg".
	Unit string `yaml:"unit"`
}

// ExportConfig toggles output files.
type ExportConfig struct {
	DetailedCSV *bool `yaml:"detailed_csv"`
	SummaryJSON *bool `yaml:"summary_json"`
	Workbook    *bool `yaml:"workbook"`
}

// enabled treats an unset toggle as on.
func enabled(b *bool) bool {
	return b == nil || *b
}

// loadRunConfig parses the YAML run config at path. An empty path returns
// the zero config; a missing or malformed file is a fatal config error.
func loadRunConfig(path string) (RunConfig, error) {
	var cfg RunConfig
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read run config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse run config %s: %w", path, err)
	}

	for t, o := range cfg.MaterialOverrides {
		if o.Material == "" || o.DensityKgM3 <= 0 {
			return cfg, fmt.Errorf("run config %s: override for %q needs a material and a positive density", path, t)
		}
	}
	return cfg, nil
}

// overridesTable converts config overrides to the resolver's table form.
func (c RunConfig) overridesTable() map[string]carbon.DefaultMaterial {
	if len(c.MaterialOverrides) == 0 {
		return nil
	}
	table := make(map[string]carbon.DefaultMaterial, len(c.MaterialOverrides))
	for t, o := range c.MaterialOverrides {
		unit := carbon.UnitVolume
		if o.Unit != "" {
			unit = carbon.ParseUnit(o.Unit)
		}
		table[t] = carbon.DefaultMaterial{
			Material:      o.Material,
			DensityKgM3:   o.DensityKgM3,
			PreferredUnit: unit,
		}
	}
	return table
}

// parseLogLevel reads IFC_CARBON_LOG_LEVEL. Invalid values fall back to
// info with a warning rather than failing the run.
func parseLogLevel(logger zerolog.Logger) zerolog.Level {
	raw := os.Getenv("IFC_CARBON_LOG_LEVEL")
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		logger.Warn().Str("value", raw).Msg("invalid IFC_CARBON_LOG_LEVEL, using info")
		return zerolog.InfoLevel
	}
	return level
}
