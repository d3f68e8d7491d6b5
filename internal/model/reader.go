package model

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Reader yields the ordered element sequence of a source model.
// Implementations wrap whatever tooling extracted the elements; the
// calculation core only ever sees this interface.
type Reader interface {
	// ReadElements loads all elements from the model at path, in source
	// iteration order. A missing, unreadable or malformed file is a fatal
	// load error; no partial element list is returned.
	ReadElements(path string) ([]Element, error)
}

// modelFile is the on-disk shape of an element dump.
type modelFile struct {
	SchemaVersion string    `json:"schema_version"`
	Project       string    `json:"project,omitempty"`
	Elements      []Element `json:"elements"`
}

// JSONReader reads elements from a JSON element dump as exported by
// upstream IFC tooling.
type JSONReader struct {
	logger zerolog.Logger
}

// NewJSONReader creates a JSONReader using the given logger for load
// diagnostics.
func NewJSONReader(logger zerolog.Logger) *JSONReader {
	return &JSONReader{logger: logger}
}

// ReadElements implements Reader.
func (r *JSONReader) ReadElements(path string) ([]Element, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source model: %w", err)
	}

	var file modelFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse source model %s: %w", path, err)
	}

	for i, el := range file.Elements {
		if el.GlobalID == "" {
			r.logger.Warn().Int("index", i).Str("name", el.Name).
				Msg("element has no GlobalID")
		}
	}

	r.logger.Info().
		Str("path", path).
		Str("project", file.Project).
		Int("elements", len(file.Elements)).
		Msg("source model loaded")

	return file.Elements, nil
}
