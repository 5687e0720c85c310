package match

import (
	"strings"
	"unicode"
)

// NormalizeName normalizes a format name for fuzzy matching:
//  1. Tokenize CamelCase and separators.
//  2. Case-fold to lower.
//  3. Drop trailing "format" / "directory" tokens, unless nothing would remain.
//
// "IntSequenceDirectoryFormat", "int_sequence" and "IntSequenceFormat" all
// normalize to "intsequence".
func NormalizeName(s string) string {
	tokens := TokenizeName(s)

	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if last != "format" && last != "directory" && last != "dir" {
			break
		}

		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, "")
}

// TokenizeName splits a name into lowercase tokens.
func TokenizeName(s string) []string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "SingleIntFormat" -> ["Single", "Int", "Format"]
//   - "TSVFormat" -> ["TSV", "Format"]
//   - "four_ints.dir" -> ["four", "ints", "dir"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// shouldStartNewToken reports a lower-to-upper transition, or the last
// capital of an acronym followed by a lowercase letter.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return unicode.IsUpper(r) && unicode.IsUpper(prev) && hasNextLower
}
