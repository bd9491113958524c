// Package table reads and writes biography tables.
package table

import (
	"fmt"
	"io"

	"github.com/ppiankov/wikibio/internal/model"
)

// Format represents output format types.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer handles record serialization.
type Writer interface {
	// Write outputs a single record.
	Write(rec model.Record) error

	// WriteAll outputs multiple records.
	WriteAll(recs []model.Record) error

	// Flush ensures all data is written.
	Flush() error
}

// NewWriter creates a writer for the specified format.
// The missing marker only applies to CSV; JSONL and YAML use null.
func NewWriter(w io.Writer, format Format, schema model.Schema, missing string) (Writer, error) {
	switch format {
	case FormatCSV, "":
		return NewCSVWriter(w, schema, missing), nil
	case FormatJSONL:
		return NewJSONLWriter(w, schema), nil
	case FormatYAML:
		return NewYAMLWriter(w, schema), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeAll(w Writer, recs []model.Record) error {
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
