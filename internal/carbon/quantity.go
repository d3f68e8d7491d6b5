package carbon

import (
	"github.com/rs/zerolog"

	"github.com/buildfootprint/ifc-carbon/internal/model"
)

// Quantity is the outcome of quantity extraction for one element.
type Quantity struct {
	// Value is the extracted quantity (0 when NoGeometry is set).
	Value float64

	// Unit is the unit of Value.
	Unit Unit

	// Source names the extraction tier that produced the value, for audit.
	Source string

	// DimensionDefaulted is set when the bounding-dimension tier had to
	// substitute 1.0 for a missing length, width or height.
	DimensionDefaulted bool

	// NoGeometry is set when no extraction tier produced a usable value.
	NoGeometry bool
}

// quantityAttempt is one tier of the extraction fallback chain.
type quantityAttempt struct {
	name string
	fn   func(model.Element) (Quantity, bool)
}

// QuantityExtractor derives a (quantity, unit) pair per element using an
// ordered fallback chain over property sets, quantity sets and bounding
// dimensions. Missing attributes mean "tier failed", never an error.
type QuantityExtractor struct {
	logger   zerolog.Logger
	attempts []quantityAttempt
}

// NewQuantityExtractor creates an extractor with the standard fallback
// chain: NetVolume pset, GrossVolume pset, quantity-set Volume, computed
// length×width×height.
func NewQuantityExtractor(logger zerolog.Logger) *QuantityExtractor {
	return &QuantityExtractor{
		logger: logger,
		attempts: []quantityAttempt{
			{name: "pset:NetVolume", fn: psetVolume("NetVolume")},
			{name: "pset:GrossVolume", fn: psetVolume("GrossVolume")},
			{name: "qset:Volume", fn: qsetVolume},
			{name: "computed:bounding", fn: boundingVolume},
		},
	}
}

// Extract runs the fallback chain and returns the first usable quantity.
// A tier's value is usable when it is present, numeric and > 0. When every
// tier fails the element is marked NoGeometry with a zero volume so it
// still produces a result record.
func (x *QuantityExtractor) Extract(el model.Element) Quantity {
	for _, attempt := range x.attempts {
		if q, ok := attempt.fn(el); ok {
			q.Source = attempt.name
			return q
		}
	}

	x.logger.Debug().Str("global_id", el.GlobalID).Str("ifc_type", el.IfcType).
		Msg("no extractable geometry")
	return Quantity{Value: 0, Unit: UnitVolume, Source: "none", NoGeometry: true}
}

// psetVolume reads a named volume property from the element's property set.
func psetVolume(name string) func(model.Element) (Quantity, bool) {
	return func(el model.Element) (Quantity, bool) {
		v, ok := el.PsetValue(name)
		if !ok || v <= 0 {
			return Quantity{}, false
		}
		return Quantity{Value: v, Unit: UnitVolume}, true
	}
}

// qsetVolume reads the Volume entry of the element's quantity set.
func qsetVolume(el model.Element) (Quantity, bool) {
	v, ok := el.QsetValue("Volume")
	if !ok || v <= 0 {
		return Quantity{}, false
	}
	return Quantity{Value: v, Unit: UnitVolume}, true
}

// boundingVolume computes length×width×height from dimensional properties.
// A dimension may live in either the property set or the quantity set; a
// missing dimension defaults to 1.0 and flags the result. The tier fails
// when no dimension is present at all or the product is not positive.
func boundingVolume(el model.Element) (Quantity, bool) {
	dims := [3]string{"Length", "Width", "Height"}

	volume := 1.0
	found := 0
	defaulted := false
	for _, name := range dims {
		v, ok := el.PsetValue(name)
		if !ok {
			v, ok = el.QsetValue(name)
		}
		if !ok || v <= 0 {
			defaulted = true
			continue
		}
		volume *= v
		found++
	}

	if found == 0 || volume <= 0 {
		return Quantity{}, false
	}
	return Quantity{Value: volume, Unit: UnitVolume, DimensionDefaulted: defaulted}, true
}
