package extract

import (
	"fmt"

	"github.com/ppiankov/wikibio/internal/model"
)

// Assembler pairs reassembled paragraphs with parsed infobox attributes
type Assembler struct {
	parser *InfoboxParser
}

// NewAssembler creates an assembler for the given schema
func NewAssembler(schema model.Schema) *Assembler {
	return &Assembler{parser: NewInfoboxParser(schema)}
}

// Assemble builds one record per identifier, in input order.
// Titles are carried for alignment only and are not part of the record.
func (a *Assembler) Assemble(ids, titles, boxes, paragraphs []string) ([]model.Record, error) {
	n := len(ids)
	if len(titles) != n || len(boxes) != n || len(paragraphs) != n {
		return nil, fmt.Errorf("assemble: %d ids, %d titles, %d infoboxes, %d paragraphs",
			n, len(titles), len(boxes), len(paragraphs))
	}

	records := make([]model.Record, n)
	for i := range ids {
		rec := model.NewRecord(paragraphs[i])
		for k, v := range a.parser.Parse(boxes[i]) {
			rec.Attrs[k] = v
		}
		records[i] = rec
	}

	return records, nil
}
