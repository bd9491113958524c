package table

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/wikibio/internal/model"
)

// YAMLWriter writes all records as one YAML sequence on Flush.
type YAMLWriter struct {
	w      *bufio.Writer
	schema model.Schema
	seq    *yaml.Node
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer, schema model.Schema) *YAMLWriter {
	return &YAMLWriter{
		w:      bufio.NewWriter(w),
		schema: schema,
		seq:    &yaml.Node{Kind: yaml.SequenceNode},
	}
}

// Write buffers a single record as an ordered mapping.
func (w *YAMLWriter) Write(rec model.Record) error {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, col := range w.schema.Columns() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col}
		val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if v, ok := rec.Get(col); ok {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
		}
		m.Content = append(m.Content, key, val)
	}
	w.seq.Content = append(w.seq.Content, m)
	return nil
}

// WriteAll buffers multiple records.
func (w *YAMLWriter) WriteAll(recs []model.Record) error {
	return writeAll(w, recs)
}

// Flush writes the buffered records as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(w.seq); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	w.seq = &yaml.Node{Kind: yaml.SequenceNode}
	return w.w.Flush()
}
