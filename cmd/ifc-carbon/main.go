// Command ifc-carbon computes embodied-carbon estimates for the building
// elements of an IFC model and writes detailed and summary reports.
//
// Usage:
//
//	ifc-carbon -model building.json -factors factors.csv [-out DIR]
//	           [-config run.yaml] [-types wall,slab] [-no-xlsx]
//
// The model file is a JSON element dump exported by upstream IFC tooling;
// the factor database is a CSV with columns ifc_type, material, unit,
// carbon_factor. Only load errors abort the run: per-element data-quality
// gaps are absorbed and surfaced in the generated reports.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/buildfootprint/ifc-carbon/internal/carbon"
	"github.com/buildfootprint/ifc-carbon/internal/export"
	"github.com/buildfootprint/ifc-carbon/internal/factors"
	"github.com/buildfootprint/ifc-carbon/internal/model"
)

func main() {
	modelPath := flag.String("model", "", "path to the source-model element dump (required)")
	factorsPath := flag.String("factors", "", "path to the carbon-factor CSV database (required)")
	outDir := flag.String("out", ".", "directory for generated reports")
	configPath := flag.String("config", "", "optional YAML run configuration")
	typeFilter := flag.String("types", "", "comma-separated IFC types to process (default: all)")
	noXLSX := flag.Bool("no-xlsx", false, "skip the XLSX workbook export")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	logger = logger.Level(parseLogLevel(logger))

	if err := run(*modelPath, *factorsPath, *outDir, *configPath, *typeFilter, *noXLSX, logger); err != nil {
		fmt.Fprintf(os.Stderr, "[ifc-carbon] %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath, factorsPath, outDir, configPath, typeFilter string, noXLSX bool, logger zerolog.Logger) error {
	if modelPath == "" || factorsPath == "" {
		flag.Usage()
		return fmt.Errorf("both -model and -factors are required")
	}

	cfg, err := loadRunConfig(configPath)
	if err != nil {
		return err
	}

	filter := cfg.ElementTypes
	if typeFilter != "" {
		filter = filter[:0]
		for _, t := range strings.Split(typeFilter, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter = append(filter, t)
			}
		}
	}

	// Bulk loads happen once, before any element is processed; both are
	// fatal on failure.
	elements, err := model.NewJSONReader(logger).ReadElements(modelPath)
	if err != nil {
		return err
	}
	index, err := factors.LoadCSV(factorsPath, logger)
	if err != nil {
		return err
	}

	engine := carbon.NewEngine(index, cfg.overridesTable(), logger)
	results := engine.Calculate(elements, filter)
	summary := carbon.Summarize(results)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if enabled(cfg.Exports.DetailedCSV) {
		if err := writeFile(filepath.Join(outDir, "elements.csv"), func(f *os.File) error {
			return export.WriteDetailedCSV(f, results)
		}); err != nil {
			return err
		}
	}
	if enabled(cfg.Exports.SummaryJSON) {
		if err := writeFile(filepath.Join(outDir, "summary.json"), func(f *os.File) error {
			return export.WriteSummaryJSON(f, summary)
		}); err != nil {
			return err
		}
	}
	if enabled(cfg.Exports.Workbook) && !noXLSX {
		if err := export.WriteWorkbook(filepath.Join(outDir, "report.xlsx"), results, summary); err != nil {
			return err
		}
	}

	logger.Info().
		Str("run_id", summary.RunID).
		Int("elements", summary.TotalElements).
		Float64("total_kgco2e", summary.TotalEmbodiedCarbonKg).
		Int("unmatched", summary.UnmatchedFactorCount).
		Msg("run complete")

	return nil
}

// writeFile creates path and hands it to write, closing on all paths.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
