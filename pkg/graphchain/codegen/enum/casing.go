package enum

import (
	"strings"
	"unicode"

	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/identifiers"
)

// ToLowerCamelCase converts a schema value name to lowerCamelCase following
// the documented boundary rules: split on underscores, on digit/letter
// boundaries, and on case transitions; preserve a leading underscore run
// verbatim; preserve a single trailing underscore only if the original
// value had one; numeric-only runs stay contiguous and are never
// re-cased.
func ToLowerCamelCase(name string) string {
	leading := 0
	for leading < len(name) && name[leading] == '_' {
		leading++
	}
	trailing := 0
	for trailing < len(name)-leading && name[len(name)-1-trailing] == '_' {
		trailing++
	}
	core := name[leading : len(name)-trailing]

	prefix := name[:leading]
	suffix := ""
	if trailing > 0 {
		suffix = "_"
	}

	words := splitWords(core)
	var b strings.Builder
	for i, w := range words {
		if isNumeric(w) {
			b.WriteString(w)
			continue
		}
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(capitalizeWord(w))
	}
	return prefix + b.String() + suffix
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// splitWords breaks core (with leading/trailing underscores already
// stripped) into boundary-delimited words: underscore separators,
// digit/letter transitions, and lower→upper case transitions (including
// the end of an acronym run immediately followed by a new word, e.g.
// "XMLParser" → "XML", "Parser").
func splitWords(core string) []string {
	var words []string
	var current []rune
	runes := []rune(core)

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	for i, r := range runes {
		if r == '_' {
			flush()
			continue
		}
		if len(current) == 0 {
			current = append(current, r)
			continue
		}
		prev := current[len(current)-1]
		boundary := false
		switch {
		case unicode.IsDigit(prev) != unicode.IsDigit(r):
			boundary = true
		case unicode.IsLower(prev) && unicode.IsUpper(r):
			boundary = true
		case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			boundary = true
		}
		if boundary {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return words
}

// isReservedKeyword reports whether name matches a reserved keyword,
// case-insensitively.
func isReservedKeyword(name string) bool {
	return identifiers.IsReserved(name)
}

// FirstUppercased returns name with its first rune uppercased, leaving the
// rest untouched.
func FirstUppercased(name string) string {
	return identifiers.FirstUppercased(name)
}
