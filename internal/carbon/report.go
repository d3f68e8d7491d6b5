package carbon

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/buildfootprint/ifc-carbon/internal/factors"
)

// GroupTotal is an aggregate over one material or IFC type.
type GroupTotal struct {
	Elements         int     `json:"elements"`
	EmbodiedCarbonKg float64 `json:"embodied_carbon_kg"`
}

// SummaryReport is a stateless aggregation of one calculation pass.
// Derived entirely from the result sequence; no extraction or matching is
// recomputed here.
type SummaryReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalElements         int     `json:"total_elements"`
	TotalEmbodiedCarbonKg float64 `json:"total_embodied_carbon_kg"`

	UnmatchedFactorCount  int `json:"unmatched_factor_count"`
	ConversionFailedCount int `json:"conversion_failed_count"`
	NoGeometryCount       int `json:"no_geometry_count"`

	ByMaterial map[string]GroupTotal `json:"by_material"`
	ByIfcType  map[string]GroupTotal `json:"by_ifc_type"`
}

// Summarize folds per-element results into a SummaryReport.
func Summarize(results []ElementResult) SummaryReport {
	report := SummaryReport{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		TotalElements: len(results),
		ByMaterial:    make(map[string]GroupTotal),
		ByIfcType:     make(map[string]GroupTotal),
	}

	for _, r := range results {
		report.TotalEmbodiedCarbonKg += r.EmbodiedCarbonKg

		if r.MatchTier == factors.MatchNone {
			report.UnmatchedFactorCount++
		}
		if r.ConversionFailed {
			report.ConversionFailedCount++
		}
		if r.NoGeometry {
			report.NoGeometryCount++
		}

		m := report.ByMaterial[r.Material]
		m.Elements++
		m.EmbodiedCarbonKg += r.EmbodiedCarbonKg
		report.ByMaterial[r.Material] = m

		t := report.ByIfcType[r.IfcType]
		t.Elements++
		t.EmbodiedCarbonKg += r.EmbodiedCarbonKg
		report.ByIfcType[r.IfcType] = t
	}

	return report
}

// Materials returns the material names of a summary in stable sorted order,
// for deterministic report output.
func (s SummaryReport) Materials() []string {
	names := make([]string, 0, len(s.ByMaterial))
	for name := range s.ByMaterial {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IfcTypes returns the IFC type tags of a summary in stable sorted order.
func (s SummaryReport) IfcTypes() []string {
	tags := make([]string, 0, len(s.ByIfcType))
	for tag := range s.ByIfcType {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
