// Package normalize rewrites bracket-escape placeholders in extracted text.
package normalize

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/ppiankov/wikibio/internal/model"
)

type rule struct {
	pattern *regexp.Regexp
	literal string
}

// Normalizer replaces placeholder tokens with their literal punctuation
type Normalizer struct {
	rules []rule
}

// New compiles a normalizer from a placeholder table.
// Rules apply in table order; matching is case-insensitive substring matching.
func New(placeholders []model.Placeholder) (*Normalizer, error) {
	rules := make([]rule, 0, len(placeholders))
	for _, p := range placeholders {
		if p.Token == "" {
			return nil, fmt.Errorf("placeholder for %q has an empty token", p.Literal)
		}
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(p.Token))
		if err != nil {
			return nil, fmt.Errorf("compile placeholder %q: %w", p.Token, err)
		}
		rules = append(rules, rule{pattern: re, literal: p.Literal})
	}
	return &Normalizer{rules: rules}, nil
}

// String rewrites every placeholder occurrence in s
func (n *Normalizer) String(s string) string {
	for _, r := range n.rules {
		s = r.pattern.ReplaceAllLiteralString(s, r.literal)
	}
	return s
}

// NullString rewrites a nullable value; missing values pass through unchanged
func (n *Normalizer) NullString(v sql.NullString) sql.NullString {
	if !v.Valid {
		return v
	}
	return sql.NullString{String: n.String(v.String), Valid: true}
}

// Records normalizes the text column of every record in place
func (n *Normalizer) Records(records []model.Record) int {
	changed := 0
	for i := range records {
		before := records[i].Text
		records[i].Text = n.NullString(before)
		if records[i].Text != before {
			changed++
		}
	}
	return changed
}
