package token

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muon-data/go-muon/scalar"
)

// Key and value escaping. Both sides of a line use Go double-quoted
// string syntax; the predicates below are the single source of truth
// for when the writer must quote, chosen so that every written line
// reads back to the same key and value.

// NeedQuoteKey reports whether a key cannot be written verbatim.
func NeedQuoteKey(key string) bool {
	if key == "" {
		return true
	}
	if strings.ContainsAny(key, ":\"\\") {
		return true
	}
	if key[0] == '#' {
		return true
	}
	if edgeSpace(key) {
		return true
	}
	return hasControl(key)
}

// NeedQuoteValue reports whether a string value cannot be written
// verbatim. Besides text the line grammar would misread, this quotes
// anything a dynamic reader would infer as a non-string scalar, so
// the string "true" writes as "\"true\"" and reads back a string.
func NeedQuoteValue(val string) bool {
	if val == "" {
		return true
	}
	if val[0] == '"' {
		return true
	}
	if edgeSpace(val) {
		return true
	}
	if hasControl(val) {
		return true
	}
	return scalar.Infer(val) != nil
}

// Quote renders s as a Go double-quoted string.
func Quote(s string) string {
	return strconv.Quote(s)
}

func edgeSpace(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(first) || unicode.IsSpace(last)
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// unquotePrefix decodes a leading double-quoted string of s, returning
// the decoded text and what follows the closing quote.
func unquotePrefix(s string) (dec, rest string, ok bool) {
	q, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", false
	}
	dec, err = strconv.Unquote(q)
	if err != nil {
		return "", "", false
	}
	return dec, s[len(q):], true
}
