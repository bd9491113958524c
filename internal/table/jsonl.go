package table

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/ppiankov/wikibio/internal/model"
)

// JSONLWriter writes newline-delimited JSON (JSONL), one object per record.
// Keys follow schema column order; missing values are null.
type JSONLWriter struct {
	w      *bufio.Writer
	schema model.Schema
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer, schema model.Schema) *JSONLWriter {
	return &JSONLWriter{
		w:      bufio.NewWriter(w),
		schema: schema,
	}
}

// Write writes a single record as a JSON line.
func (w *JSONLWriter) Write(rec model.Record) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range w.schema.Columns() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v, ok := rec.Get(col)
		if !ok {
			buf.WriteString("null")
			continue
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(val)
	}
	buf.WriteString("}\n")

	_, err := w.w.Write(buf.Bytes())
	return err
}

// WriteAll writes multiple records as JSON lines.
func (w *JSONLWriter) WriteAll(recs []model.Record) error {
	return writeAll(w, recs)
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}
