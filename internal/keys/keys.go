package keys

import "strings"

// SpeciesKey produces the canonical lookup key for a species name: trimmed,
// lower-cased, inner whitespace collapsed to single underscores. "Rock Toise",
// " rock_toise " and "ROCK  TOISE" all map to "rock_toise".
func SpeciesKey(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '_'
	})
	return strings.Join(fields, "_")
}
