package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/buildfootprint/ifc-carbon/internal/carbon"
)

const (
	detailsSheet = "Details"
	summarySheet = "Summary"
)

// WriteWorkbook writes an XLSX workbook with a Details sheet (one row per
// element result) and a Summary sheet (totals plus by-material and by-type
// breakdowns) to path.
func WriteWorkbook(path string, results []carbon.ElementResult, summary carbon.SummaryReport) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", detailsSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeDetailsSheet(f, results, headerStyle); err != nil {
		return err
	}
	if err := writeSummarySheet(f, summary, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeDetailsSheet(f *excelize.File, results []carbon.ElementResult, headerStyle int) error {
	for i, col := range detailedColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(detailsSheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(detailedColumns), 1)
	if err := f.SetCellStyle(detailsSheet, "A1", endHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	// Freeze the header row above the data.
	if err := f.SetPanes(detailsSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	for row, r := range results {
		values := []interface{}{
			r.GlobalID, r.Name, r.IfcType, r.Material,
			r.Quantity, string(r.Unit), r.Factor, r.EmbodiedCarbonKg,
			string(r.MatchTier), resultFlags(r),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to address result cell: %w", err)
			}
			if err := f.SetCellValue(detailsSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write result cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary carbon.SummaryReport, headerStyle int) error {
	rows := [][]interface{}{
		{"Run ID", summary.RunID},
		{"Generated at", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Total elements", summary.TotalElements},
		{"Total embodied carbon (kgCO2e)", summary.TotalEmbodiedCarbonKg},
		{"Unmatched factors", summary.UnmatchedFactorCount},
		{"Conversion failures", summary.ConversionFailedCount},
		{"Elements without geometry", summary.NoGeometryCount},
		{},
		{"Material", "Elements", "EmbodiedCarbon_kgCO2e"},
	}
	for _, name := range summary.Materials() {
		g := summary.ByMaterial[name]
		rows = append(rows, []interface{}{name, g.Elements, g.EmbodiedCarbonKg})
	}
	rows = append(rows, []interface{}{}, []interface{}{"IfcType", "Elements", "EmbodiedCarbon_kgCO2e"})
	for _, tag := range summary.IfcTypes() {
		g := summary.ByIfcType[tag]
		rows = append(rows, []interface{}{tag, g.Elements, g.EmbodiedCarbonKg})
	}

	for rowIdx, row := range rows {
		for colIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("failed to address summary cell: %w", err)
			}
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return fmt.Errorf("failed to write summary cell %s: %w", cell, err)
			}
		}
		// Style the two breakdown header rows.
		if len(row) == 3 && (row[0] == "Material" || row[0] == "IfcType") {
			start, _ := excelize.CoordinatesToCellName(1, rowIdx+1)
			end, _ := excelize.CoordinatesToCellName(3, rowIdx+1)
			if err := f.SetCellStyle(summarySheet, start, end, headerStyle); err != nil {
				return fmt.Errorf("failed to style breakdown header: %w", err)
			}
		}
	}
	return nil
}
