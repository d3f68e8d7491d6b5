package carbon

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/buildfootprint/ifc-carbon/internal/factors"
	"github.com/buildfootprint/ifc-carbon/internal/model"
)

// ElementResult is the embodied-carbon outcome for one element. Exactly one
// result is produced per processed element, including elements whose
// extraction or factor matching failed.
type ElementResult struct {
	GlobalID string
	Name     string
	IfcType  string

	// Material and DensityKgM3 are the resolved material (never empty,
	// density always positive).
	Material    string
	DensityKgM3 float64

	// Quantity and Unit are the reported quantity after any volume↔mass
	// conversion.
	Quantity float64
	Unit     Unit

	// Factor is the matched carbon factor in kgCO2e per FactorUnit
	// (0 when MatchTier is none).
	Factor     float64
	FactorUnit Unit
	MatchTier  factors.MatchTier

	// EmbodiedCarbonKg is Quantity × Factor in kgCO2e.
	EmbodiedCarbonKg float64

	// Data-quality flags, surfaced in exports rather than thrown.
	NoGeometry         bool
	DimensionDefaulted bool
	ConversionFailed   bool
	QuantitySource     string
}

// Detail returns a human-readable explanation of the calculation for one
// element, for logs and report footnotes.
func (r ElementResult) Detail() string {
	if r.MatchTier == factors.MatchNone {
		return fmt.Sprintf("%s %s: no carbon factor for (%s, %s), embodied carbon 0",
			r.IfcType, r.GlobalID, r.IfcType, r.Material)
	}
	return fmt.Sprintf("%s %s: %.4f %s of %s × %.4f kgCO2e/%s (%s match) = %.4f kgCO2e",
		r.IfcType, r.GlobalID, r.Quantity, r.Unit, r.Material,
		r.Factor, r.FactorUnit, r.MatchTier, r.EmbodiedCarbonKg)
}

// Engine orchestrates quantity extraction, material resolution and factor
// lookup per element. Elements are processed one at a time in source order;
// each result is independently derivable from its element.
type Engine struct {
	logger    zerolog.Logger
	extractor *QuantityExtractor
	resolver  *MaterialResolver
	index     *factors.Index
}

// NewEngine creates an Engine over a built factor index. overrides may be
// nil (see NewMaterialResolver).
func NewEngine(index *factors.Index, overrides map[string]DefaultMaterial, logger zerolog.Logger) *Engine {
	return &Engine{
		logger:    logger,
		extractor: NewQuantityExtractor(logger),
		resolver:  NewMaterialResolver(overrides, logger),
		index:     index,
	}
}

// Calculate produces one ElementResult per element, in input order. When
// filterTypes is non-empty, elements of other IFC types are never visited
// and do not appear in the output at all, unlike unmatched-factor elements
// which still produce a zero-carbon record.
func (e *Engine) Calculate(elements []model.Element, filterTypes []string) []ElementResult {
	filter := make(map[string]struct{}, len(filterTypes))
	for _, t := range filterTypes {
		filter[factors.NormalizeType(t)] = struct{}{}
	}

	results := make([]ElementResult, 0, len(elements))
	for _, el := range elements {
		if len(filter) > 0 {
			if _, ok := filter[factors.NormalizeType(el.IfcType)]; !ok {
				continue
			}
		}
		results = append(results, e.calculateOne(el))
	}

	e.logger.Info().Int("elements", len(results)).Msg("calculation pass complete")
	return results
}

// calculateOne runs the per-element pipeline: extract, resolve, look up,
// convert, multiply. Per-element data-quality issues degrade to flags and
// zero values; nothing here fails the run.
func (e *Engine) calculateOne(el model.Element) ElementResult {
	qty := e.extractor.Extract(el)
	mat := e.resolver.Resolve(el)

	match := e.index.Lookup(el.IfcType, mat.Name, string(e.resolver.PreferredUnit(el.IfcType)))

	res := ElementResult{
		GlobalID:           el.GlobalID,
		Name:               el.Name,
		IfcType:            el.IfcType,
		Material:           mat.Name,
		DensityKgM3:        mat.DensityKgM3,
		Quantity:           qty.Value,
		Unit:               qty.Unit,
		MatchTier:          match.Tier,
		NoGeometry:         qty.NoGeometry,
		DimensionDefaulted: qty.DimensionDefaulted,
		QuantitySource:     qty.Source,
	}

	if match.Tier == factors.MatchNone {
		e.logger.Debug().Str("global_id", el.GlobalID).Str("ifc_type", el.IfcType).
			Str("material", mat.Name).Msg("no carbon factor matched")
		return res
	}

	res.Factor = match.Factor
	res.FactorUnit = ParseUnit(match.Unit)

	// Align the extracted quantity with the factor's denomination unit.
	// Only the volume↔mass pair is convertible (via density); any other
	// mismatch is reported as-is with the factor applied nominally.
	if converted, ok := ConvertVolumeMass(res.Quantity, qty.Unit, res.FactorUnit, mat.DensityKgM3); ok {
		res.Quantity = converted
		res.Unit = res.FactorUnit
	} else {
		res.ConversionFailed = true
		e.logger.Warn().Str("global_id", el.GlobalID).
			Str("quantity_unit", string(qty.Unit)).Str("factor_unit", string(res.FactorUnit)).
			Msg("unconvertible unit mismatch, factor applied nominally")
	}

	res.EmbodiedCarbonKg = res.Quantity * res.Factor
	return res
}
