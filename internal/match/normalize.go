package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for loose comparison: CamelCase is
// split, separators (_, -, space, dot) are dropped and the result is
// lower-cased. "isPrimaryKey", "is_primary_key" and "Is-Primary-Key" all
// normalize to "isprimarykey".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// TokenizeIdent splits an identifier into lower-case words.
//
//	"customerID"     -> [customer id]
//	"XMLSchema"      -> [xml schema]
//	"logical_type"   -> [logical type]
//	"dataLevel:gold" -> [data level:gold]
func TokenizeIdent(s string) []string {
	var (
		words []string
		word  strings.Builder
	)

	flush := func() {
		if word.Len() > 0 {
			words = append(words, strings.ToLower(word.String()))
			word.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		word.WriteRune(r)
	}

	flush()

	return words
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.':
		return true
	default:
		return false
	}
}

// startsWord reports a lower-to-upper transition ("dataType") or the last
// capital of an acronym followed by lower case ("SQLType").
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return !isSeparator(prev)
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
