package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ppiankov/wikibio/internal/model"
)

// ErrMissingTextColumn is returned when a table has no text column
var ErrMissingTextColumn = errors.New("table has no text column")

// CSVWriter writes a header row followed by one row per record
type CSVWriter struct {
	w           *csv.Writer
	schema      model.Schema
	missing     string
	wroteHeader bool
}

// NewCSVWriter creates a CSV writer rendering absent values as missing
func NewCSVWriter(w io.Writer, schema model.Schema, missing string) *CSVWriter {
	return &CSVWriter{
		w:       csv.NewWriter(w),
		schema:  schema,
		missing: missing,
	}
}

func (w *CSVWriter) header() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.w.Write(w.schema.Columns())
}

// Write writes one record row
func (w *CSVWriter) Write(rec model.Record) error {
	if err := w.header(); err != nil {
		return err
	}

	cols := w.schema.Columns()
	row := make([]string, len(cols))
	for i, col := range cols {
		v, ok := rec.Get(col)
		if !ok {
			v = w.missing
		}
		row[i] = v
	}
	return w.w.Write(row)
}

// WriteAll writes multiple record rows
func (w *CSVWriter) WriteAll(recs []model.Record) error {
	return writeAll(w, recs)
}

// Flush writes the header if nothing else was written, then flushes
func (w *CSVWriter) Flush() error {
	if err := w.header(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

// ReadCSV reads a table written by CSVWriter.
// Cells equal to the missing marker are absent; columns outside the schema are ignored.
func ReadCSV(r io.Reader, schema model.Schema, missing string) ([]model.Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingTextColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	textIdx := -1
	attrIdx := make(map[int]string)
	for i, col := range header {
		switch {
		case col == model.TextColumn:
			textIdx = i
		case schema.Allowed(col):
			attrIdx[i] = col
		}
	}
	if textIdx < 0 {
		return nil, ErrMissingTextColumn
	}

	var records []model.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}

		rec := model.Record{Attrs: make(map[string]string)}
		if v := row[textIdx]; v != missing {
			rec.Text.String, rec.Text.Valid = v, true
		}
		for i, col := range attrIdx {
			if v := row[i]; v != missing {
				rec.Attrs[col] = v
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
