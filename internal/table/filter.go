package table

import (
	"strings"

	"github.com/ppiankov/wikibio/internal/model"
)

// Filter returns the records whose column equals value, ignoring case
func Filter(records []model.Record, column, value string) []model.Record {
	var out []model.Record
	for _, rec := range records {
		if v, ok := rec.Get(column); ok && strings.EqualFold(v, value) {
			out = append(out, rec)
		}
	}
	return out
}
