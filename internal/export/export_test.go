package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/buildfootprint/ifc-carbon/internal/carbon"
	"github.com/buildfootprint/ifc-carbon/internal/factors"
)

func sampleResults() []carbon.ElementResult {
	return []carbon.ElementResult{
		{
			GlobalID: "2O2Fr$t4X7Zf8NOew3FL9r", Name: "Basic Wall", IfcType: "IfcWall",
			Material: "concrete", DensityKgM3: 2400,
			Quantity: 10, Unit: carbon.UnitVolume,
			Factor: 315.5, FactorUnit: carbon.UnitVolume, MatchTier: factors.MatchExact,
			EmbodiedCarbonKg: 3155,
		},
		{
			GlobalID: "1kTvXnbbzCWw8lcMd1dR4o", Name: "Suspended Ceiling", IfcType: "IfcCovering",
			Material: "plasterboard", DensityKgM3: 700,
			Quantity: 0, Unit: carbon.UnitVolume, MatchTier: factors.MatchNone,
			NoGeometry: true,
		},
	}
}

func sampleSummary() carbon.SummaryReport {
	return carbon.SummaryReport{
		RunID:                 "7f3f2c1a-0000-0000-0000-000000000000",
		GeneratedAt:           time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		TotalElements:         2,
		TotalEmbodiedCarbonKg: 3155,
		UnmatchedFactorCount:  1,
		NoGeometryCount:       1,
		ByMaterial: map[string]carbon.GroupTotal{
			"concrete":     {Elements: 1, EmbodiedCarbonKg: 3155},
			"plasterboard": {Elements: 1},
		},
		ByIfcType: map[string]carbon.GroupTotal{
			"IfcWall":     {Elements: 1, EmbodiedCarbonKg: 3155},
			"IfcCovering": {Elements: 1},
		},
	}
}

func TestWriteDetailedCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDetailedCSV(&buf, sampleResults()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per result")

	assert.Equal(t, detailedColumns, rows[0])
	assert.Equal(t, "2O2Fr$t4X7Zf8NOew3FL9r", rows[1][0])
	assert.Equal(t, "315.5000", rows[1][6])
	assert.Equal(t, "3155", rows[1][7])
	assert.Equal(t, "exact", rows[1][8])
	assert.Empty(t, rows[1][9])

	assert.Equal(t, "none", rows[2][8])
	assert.Equal(t, "no_geometry", rows[2][9])
	assert.Equal(t, "0", rows[2][7], "unmatched element still exported with zero carbon")
}

func TestWriteDetailedCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDetailedCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryJSON(&buf, sampleSummary()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.EqualValues(t, 2, decoded["total_elements"])
	assert.EqualValues(t, 3155, decoded["total_embodied_carbon_kg"])
	assert.EqualValues(t, 1, decoded["unmatched_factor_count"])

	byMaterial, ok := decoded["by_material"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, byMaterial, "concrete")
	assert.Contains(t, byMaterial, "plasterboard")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleResults(), sampleSummary()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Details", "Summary"}, f.GetSheetList())

	guid, err := f.GetCellValue("Details", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2O2Fr$t4X7Zf8NOew3FL9r", guid)

	header, err := f.GetCellValue("Details", "A1")
	require.NoError(t, err)
	assert.Equal(t, "GUID", header)

	total, err := f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "3155", total)
}
