package export

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/buildfootprint/ifc-carbon/internal/carbon"
)

// WriteSummaryJSON writes the summary report as indented JSON.
func WriteSummaryJSON(w io.Writer, summary carbon.SummaryReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
