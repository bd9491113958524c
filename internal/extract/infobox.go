package extract

import (
	"strings"

	"github.com/ppiankov/wikibio/internal/model"
)

// NoneValue marks an infobox slot that carries no value
const NoneValue = "<none>"

// Token is a single key[_index]:value unit of an infobox line
type Token struct {
	KeyPos string // Raw key including any index suffix, e.g. "occupation_2"
	Value  string // Everything after the first colon
}

// ParseToken splits a raw token on its first colon.
// It returns false for tokens with no colon.
func ParseToken(raw string) (Token, bool) {
	keyPos, value, ok := strings.Cut(raw, ":")
	if !ok {
		return Token{}, false
	}
	return Token{KeyPos: keyPos, Value: value}, true
}

// Empty reports whether the token carries no usable value
func (t Token) Empty() bool {
	return t.Value == "" || t.Value == NoneValue
}

// BaseKey strips the trailing underscore-delimited suffix from a key.
// Any suffix is stripped, numeric or not: "birth_place_extra" becomes "birth_place".
func BaseKey(keyPos string) string {
	if i := strings.LastIndex(keyPos, "_"); i >= 0 {
		return keyPos[:i]
	}
	return keyPos
}

// InfoboxParser turns infobox lines into allow-listed attribute maps
type InfoboxParser struct {
	schema model.Schema
}

// NewInfoboxParser creates a parser restricted to the schema's fields
func NewInfoboxParser(schema model.Schema) *InfoboxParser {
	return &InfoboxParser{schema: schema}
}

// Parse extracts the allow-listed attributes of one infobox line.
// Values sharing a base key are joined with single spaces in token order.
func (p *InfoboxParser) Parse(line string) map[string]string {
	values := make(map[string][]string)

	for _, raw := range strings.Fields(line) {
		tok, ok := ParseToken(raw)
		if !ok || tok.Empty() {
			continue
		}

		key := BaseKey(tok.KeyPos)
		if !p.schema.Allowed(key) {
			continue
		}
		values[key] = append(values[key], tok.Value)
	}

	fields := make(map[string]string, len(values))
	for k, v := range values {
		fields[k] = strings.Join(v, " ")
	}
	return fields
}
