// Package scalar converts between MuON scalar text and Go values.
//
// Decoding is strict: the accepted grammar is narrower than strconv's
// (no hex floats, no "Infinity" spellings, underscores only between
// digits). Malformed text fails with ir.ErrSyntax; values that do not
// fit the requested width fail with ir.ErrOverflow, so callers can tell
// "not a number" from "a number too large".
package scalar

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/muon-data/go-muon/ir"
)

// ParseBool decodes exactly "true" or "false".
func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected bool, got %q", ir.ErrSyntax, s)
}

// ParseInt decodes a signed integer of the given bit width (8, 16, 32
// or 64). The text may carry a sign, a radix prefix (0b, 0o, 0x) and
// underscore separators between digits.
func ParseInt(s string, bits int) (int64, error) {
	rest := s
	neg := false
	switch {
	case strings.HasPrefix(rest, "-"):
		neg = true
		rest = rest[1:]
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	}
	mag, err := parseUnsigned(s, rest)
	if err != nil {
		return 0, err
	}
	cutoff := uint64(1) << (bits - 1)
	if neg {
		if mag > cutoff {
			return 0, fmt.Errorf("%w: %s does not fit in int%d", ir.ErrOverflow, s, bits)
		}
		return -int64(mag), nil
	}
	if mag >= cutoff {
		return 0, fmt.Errorf("%w: %s does not fit in int%d", ir.ErrOverflow, s, bits)
	}
	return int64(mag), nil
}

// ParseUint decodes an unsigned integer of the given bit width. A
// leading "-" is a syntax error, not overflow.
func ParseUint(s string, bits int) (uint64, error) {
	rest := strings.TrimPrefix(s, "+")
	mag, err := parseUnsigned(s, rest)
	if err != nil {
		return 0, err
	}
	if bits < 64 && mag >= uint64(1)<<bits {
		return 0, fmt.Errorf("%w: %s does not fit in uint%d", ir.ErrOverflow, s, bits)
	}
	return mag, nil
}

// parseUnsigned accumulates the magnitude of rest; orig is the full
// input, kept only for error text.
func parseUnsigned(orig, rest string) (uint64, error) {
	base := uint64(10)
	switch {
	case strings.HasPrefix(rest, "0b"):
		base, rest = 2, rest[2:]
	case strings.HasPrefix(rest, "0o"):
		base, rest = 8, rest[2:]
	case strings.HasPrefix(rest, "0x"):
		base, rest = 16, rest[2:]
	}
	if rest == "" {
		return 0, fmt.Errorf("%w: expected integer, got %q", ir.ErrSyntax, orig)
	}
	var v uint64
	prevDigit := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '_' {
			// separators must sit between digits
			if !prevDigit || i+1 == len(rest) {
				return 0, fmt.Errorf("%w: expected integer, got %q", ir.ErrSyntax, orig)
			}
			prevDigit = false
			continue
		}
		d, ok := digitVal(c)
		if !ok || uint64(d) >= base {
			return 0, fmt.Errorf("%w: expected integer, got %q", ir.ErrSyntax, orig)
		}
		if v > (math.MaxUint64-uint64(d))/base {
			return 0, fmt.Errorf("%w: %s does not fit in 64 bits", ir.ErrOverflow, orig)
		}
		v = v*base + uint64(d)
		prevDigit = true
	}
	return v, nil
}

func digitVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// ParseFloat decodes a float of the given bit width (32 or 64). The
// special spellings inf, +inf, -inf and NaN are accepted; width
// narrowing follows IEEE rounding, as with a float32 conversion.
func ParseFloat(s string, bits int) (float64, error) {
	switch s {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	if !validFloat(s) {
		return 0, fmt.Errorf("%w: expected float, got %q", ir.ErrSyntax, s)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: expected float, got %q", ir.ErrSyntax, s)
	}
	if bits == 32 {
		v = float64(float32(v))
	}
	return v, nil
}

// validFloat checks the grammar: sign? digits ('.' digits)? (e sign?
// digits)?, underscores only between digits of the same group.
func validFloat(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	i, ok := scanDigits(s, i)
	if !ok {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		i, ok = scanDigits(s, i)
		if !ok {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		i, ok = scanDigits(s, i)
		if !ok {
			return false
		}
	}
	return i == len(s)
}

func scanDigits(s string, i int) (int, bool) {
	start := i
	prevDigit := false
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			prevDigit = true
			i++
			continue
		}
		if c == '_' {
			if !prevDigit {
				return i, false
			}
			prevDigit = false
			i++
			continue
		}
		break
	}
	return i, i > start && prevDigit
}

func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}

func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func FormatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// FormatFloat renders a finite float so a reader infers it back as a
// float: the text always carries a '.' or an exponent. Non-finite
// values have no such spelling and fail with ir.ErrUnsupportedValue.
func FormatFloat(v float64) (string, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "", fmt.Errorf("%w: non-finite float %v", ir.ErrUnsupportedValue, v)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}
