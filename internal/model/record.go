package model

import "database/sql"

// TextColumn is the first column of every output table
const TextColumn = "text"

// Record represents one extracted biography
type Record struct {
	Text  sql.NullString    // Reassembled paragraph; invalid only when read back as missing
	Attrs map[string]string // Allow-listed infobox attributes; absent keys are missing
}

// NewRecord creates a record with the given paragraph text
func NewRecord(text string) Record {
	return Record{
		Text:  sql.NullString{String: text, Valid: true},
		Attrs: make(map[string]string),
	}
}

// Get returns the value of a column and whether it is present
func (r Record) Get(column string) (string, bool) {
	if column == TextColumn {
		return r.Text.String, r.Text.Valid
	}
	v, ok := r.Attrs[column]
	return v, ok
}

// Schema is the ordered column list of a table
type Schema struct {
	Fields []string
}

// NewSchema creates a schema over the given attribute allow-list
func NewSchema(fields []string) Schema {
	f := make([]string, len(fields))
	copy(f, fields)
	return Schema{Fields: f}
}

// Columns returns the text column followed by the attribute columns
func (s Schema) Columns() []string {
	cols := make([]string, 0, len(s.Fields)+1)
	cols = append(cols, TextColumn)
	return append(cols, s.Fields...)
}

// Allowed reports whether key is one of the schema's attributes
func (s Schema) Allowed(key string) bool {
	for _, f := range s.Fields {
		if f == key {
			return true
		}
	}
	return false
}
