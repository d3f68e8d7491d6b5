// Package export writes calculation results to CSV, JSON and XLSX outputs.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/buildfootprint/ifc-carbon/internal/carbon"
)

// detailedColumns is the column order of the detailed-results export.
var detailedColumns = []string{
	"GUID", "Name", "IfcType", "Material",
	"Quantity", "Unit", "CarbonFactor", "EmbodiedCarbon_kgCO2e",
	"MatchTier", "Flags",
}

// WriteDetailedCSV writes one row per ElementResult in result order.
func WriteDetailedCSV(w io.Writer, results []carbon.ElementResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(detailedColumns); err != nil {
		return fmt.Errorf("failed to write detailed header: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.GlobalID,
			r.Name,
			r.IfcType,
			r.Material,
			formatFloat(r.Quantity),
			string(r.Unit),
			formatFloat(r.Factor),
			formatFloat(r.EmbodiedCarbonKg),
			string(r.MatchTier),
			resultFlags(r),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write result row for %s: %w", r.GlobalID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// resultFlags renders the data-quality flags of a result as a
// semicolon-separated list, empty when the result is clean.
func resultFlags(r carbon.ElementResult) string {
	var flags []string
	if r.NoGeometry {
		flags = append(flags, "no_geometry")
	}
	if r.DimensionDefaulted {
		flags = append(flags, "dimension_defaulted")
	}
	if r.ConversionFailed {
		flags = append(flags, "conversion_failed")
	}
	return strings.Join(flags, ";")
}

// formatFloat renders a float compactly: integers without decimals,
// everything else with up to 4 decimal places.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}
