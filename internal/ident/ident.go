// Package ident derives raw-key aliases from Go field names and converts
// raw key tokens back into field-name shape.
//
// Cluster metric and config keys come in two spellings for the same logical
// name: dash-separated ("repl-factor", config style) and underscore-separated
// ("repl_factor", metric style). A Go field ReplFactor must answer to both.
package ident

import (
	"strings"
	"unicode"
)

// DashAlias returns the config-style alias of a Go field name:
// tokens joined by '-', lower-cased. "StorageEngine" -> "storage-engine".
func DashAlias(name string) string {
	return joinLower(tokenize(name), '-')
}

// UnderscoreAlias returns the metric-style alias of a Go field name:
// tokens joined by '_', lower-cased. "StorageEngine" -> "storage_engine".
func UnderscoreAlias(name string) string {
	return joinLower(tokenize(name), '_')
}

// FieldName converts a raw key token into camelCase field-name shape,
// used as a last-resort lookup when no alias matches.
// "available_pct" -> "availablePct", "stop-writes" -> "stopWrites".
func FieldName(token string) string {
	tokens := tokenize(token)
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder

	b.Grow(len(token))

	for i, t := range tokens {
		t = strings.ToLower(t)
		if i > 0 {
			t = capitalize(t)
		}

		b.WriteString(t)
	}

	return b.String()
}

// EnumLiteral normalizes a raw enum value for matching against declared
// members: upper-cased, dashes replaced with underscores.
// "kv-store" -> "KV_STORE".
func EnumLiteral(raw string) string {
	return strings.ReplaceAll(strings.ToUpper(raw), "-", "_")
}

// tokenize splits a CamelCase, camelCase, dashed or underscored identifier
// into tokens.
// Examples:
//   - "ReplFactor" -> ["Repl", "Factor"]
//   - "repl_factor" -> ["repl", "factor"]
//   - "XDRConfig" -> ["XDR", "Config"]
func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		// Separators end the current token
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i == 0 {
			current.WriteRune(r)

			continue
		}

		if shouldStartNewToken(runes, i) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)
	isPrevSep := isSeparator(prevRune)

	// Transition from lowercase to uppercase: start new token
	// e.g., "replFactor" -> split before 'F'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// End of acronym: check if next character is lowercase
	// e.g., "XDRConfig" -> "XDR" + "Config", split before 'C'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	return false
}

func joinLower(tokens []string, sep rune) string {
	var b strings.Builder

	for i, t := range tokens {
		if i > 0 {
			b.WriteRune(sep)
		}

		b.WriteString(strings.ToLower(t))
	}

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}
