package factors

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Required factor-database columns. Header matching is case-insensitive.
const (
	colIfcType  = "ifc_type"
	colMaterial = "material"
	colUnit     = "unit"
	colFactor   = "carbon_factor"
)

// Index answers factor lookups against in-memory tier maps built once at
// load time. Lookups are O(1) per tier; ties within a tier resolve to the
// first entry in database order.
type Index struct {
	logger  zerolog.Logger
	entries []Entry

	// Tier maps, most to least specific. Keys are normalized strings.
	exact        map[string]Entry // type|material|unit
	materialUnit map[string]Entry // material|unit
	materialOnly map[string]Entry // material
}

// NewIndex builds an Index from factor entries in database order.
func NewIndex(entries []Entry, logger zerolog.Logger) *Index {
	ix := &Index{
		logger:       logger,
		entries:      entries,
		exact:        make(map[string]Entry, len(entries)),
		materialUnit: make(map[string]Entry, len(entries)),
		materialOnly: make(map[string]Entry, len(entries)),
	}

	for _, e := range entries {
		t := NormalizeType(e.IfcType)
		m := Normalize(e.Material)
		u := Normalize(e.Unit)

		// First entry wins per key; later duplicates are ignored so that
		// matching stays deterministic under database order.
		exactKey := t + "|" + m + "|" + u
		if _, dup := ix.exact[exactKey]; !dup {
			ix.exact[exactKey] = e
		} else {
			logger.Debug().Str("ifc_type", e.IfcType).Str("material", e.Material).
				Str("unit", e.Unit).Msg("duplicate factor entry ignored")
		}
		if _, dup := ix.materialUnit[m+"|"+u]; !dup {
			ix.materialUnit[m+"|"+u] = e
		}
		if _, dup := ix.materialOnly[m]; !dup {
			ix.materialOnly[m] = e
		}
	}

	return ix
}

// LoadCSV reads the factor database at path and builds the lookup index.
// A missing file, unreadable content or absent required column is a fatal
// database error. Rows with a non-numeric factor are skipped with a warning.
func LoadCSV(path string, logger zerolog.Logger) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open factor database: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse factor database %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("factor database %s is empty", path)
	}

	cols, err := headerColumns(records[0])
	if err != nil {
		return nil, fmt.Errorf("factor database %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) <= cols.max() {
			logger.Warn().Int("row", i+2).Msg("short factor row skipped")
			continue
		}
		factor, err := strconv.ParseFloat(strings.TrimSpace(rec[cols.factor]), 64)
		if err != nil {
			logger.Warn().Int("row", i+2).Str("value", rec[cols.factor]).
				Msg("non-numeric carbon factor skipped")
			continue
		}
		entries = append(entries, Entry{
			IfcType:  strings.TrimSpace(rec[cols.ifcType]),
			Material: strings.TrimSpace(rec[cols.material]),
			Unit:     strings.TrimSpace(rec[cols.unit]),
			Factor:   factor,
		})
	}

	logger.Info().Str("path", path).Int("entries", len(entries)).
		Msg("factor database loaded")

	return NewIndex(entries, logger), nil
}

// Lookup finds the most specific factor for (ifcType, material, unit).
// Precedence: exact > material+unit > material-only. When nothing matches,
// the returned Match has Tier MatchNone and a zero factor so the caller can
// surface the gap rather than fail.
func (ix *Index) Lookup(ifcType, material, unit string) Match {
	t := NormalizeType(ifcType)
	m := Normalize(material)
	u := Normalize(unit)

	if e, ok := ix.exact[t+"|"+m+"|"+u]; ok {
		return Match{Factor: e.Factor, Unit: e.Unit, Tier: MatchExact}
	}
	if e, ok := ix.materialUnit[m+"|"+u]; ok {
		return Match{Factor: e.Factor, Unit: e.Unit, Tier: MatchMaterialUnit}
	}
	if e, ok := ix.materialOnly[m]; ok {
		return Match{Factor: e.Factor, Unit: e.Unit, Tier: MatchMaterialOnly}
	}
	return Match{Tier: MatchNone}
}

// Len returns the number of loaded factor entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Normalize canonicalizes a database or query string for comparison:
// whitespace-trimmed and lowercased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeType canonicalizes an IFC entity tag to a bare type key: the
// "Ifc" prefix and "StandardCase" suffix are stripped after Normalize, so
// "IfcWallStandardCase", "IfcWall" and "wall" all key the same entries.
func NormalizeType(ifcType string) string {
	t := Normalize(ifcType)
	t = strings.TrimPrefix(t, "ifc")
	t = strings.TrimSuffix(t, "standardcase")
	return t
}

type columnSet struct {
	ifcType, material, unit, factor int
}

// max returns the highest column index, for short-row checks.
func (c columnSet) max() int {
	m := c.ifcType
	for _, i := range []int{c.material, c.unit, c.factor} {
		if i > m {
			m = i
		}
	}
	return m
}

// headerColumns resolves required column positions from the header row.
func headerColumns(header []string) (columnSet, error) {
	pos := map[string]int{}
	for i, h := range header {
		pos[Normalize(h)] = i
	}

	cols := columnSet{}
	for _, req := range []struct {
		name string
		dst  *int
	}{
		{colIfcType, &cols.ifcType},
		{colMaterial, &cols.material},
		{colUnit, &cols.unit},
		{colFactor, &cols.factor},
	} {
		i, ok := pos[req.name]
		if !ok {
			return columnSet{}, fmt.Errorf("missing required column %q", req.name)
		}
		*req.dst = i
	}
	return cols, nil
}
