// Package token splits MuON text into logical lines.
//
// A document is a sequence of lines of the form "key", "key:" or
// "key: value", indented with spaces. The first indented line fixes
// the indent unit for the whole document; every deeper line must use
// an exact multiple of it. Comment lines (#) and blank lines are
// dropped here, so downstream stages never see them.
package token

import (
	"strings"
)

// Line is one logical key/value line. Indent counts indent units, not
// spaces. HasValue distinguishes "key: value" from the bare "key" and
// "key:" forms, which mean the key is present with no value.
type Line struct {
	Indent   int
	Key      string
	Value    string
	HasValue bool
	// Quoted records that the value was written in quoted form, which
	// pins it as a string for dynamic readers.
	Quoted bool
	Pos    Pos
}

// Tokenize splits data into logical lines. Input must be UTF-8; the
// only accepted line break is \n, with an optional \r before it.
func Tokenize(data []byte) ([]Line, error) {
	t := tokenizer{}
	var lines []Line
	for n, raw := range strings.Split(string(data), "\n") {
		ln, ok, err := t.line(raw, n+1)
		if err != nil {
			return nil, err
		}
		if ok {
			lines = append(lines, ln)
		}
	}
	return lines, nil
}

type tokenizer struct {
	// spaces per indent level; 0 until the first indented line
	unit int
}

// line tokenizes one raw source line. ok is false for blank and
// comment lines.
func (t *tokenizer) line(raw string, n int) (Line, bool, error) {
	raw = strings.TrimSuffix(raw, "\r")
	indent := 0
	for indent < len(raw) && raw[indent] == ' ' {
		indent++
	}
	rest := raw[indent:]
	if rest == "" || rest[0] == '#' {
		return Line{}, false, nil
	}
	if rest[0] == '\t' {
		return Line{}, false, syntaxErrf(Pos{n, indent + 1}, "tab in indentation")
	}
	depth, err := t.depth(indent, n)
	if err != nil {
		return Line{}, false, err
	}
	ln := Line{Indent: depth, Pos: Pos{n, indent + 1}}
	if err := parseKeyValue(rest, &ln); err != nil {
		return Line{}, false, err
	}
	return ln, true, nil
}

func (t *tokenizer) depth(spaces, n int) (int, error) {
	if spaces == 0 {
		return 0, nil
	}
	if t.unit == 0 {
		t.unit = spaces
		return 1, nil
	}
	if spaces%t.unit != 0 {
		return 0, syntaxErrf(Pos{n, 1}, "indent of %d spaces is not a multiple of the indent unit (%d)", spaces, t.unit)
	}
	return spaces / t.unit, nil
}

func parseKeyValue(rest string, ln *Line) error {
	if strings.HasPrefix(rest, ":::") {
		return syntaxErrf(ln.Pos, "schema definitions are not supported")
	}
	var after string
	if rest[0] == '"' {
		key, tail, ok := unquotePrefix(rest)
		if !ok {
			return syntaxErrf(ln.Pos, "bad quoted key")
		}
		ln.Key = key
		after = tail
		if after != "" && after[0] != ':' {
			return syntaxErrf(ln.Pos, "expected %q after quoted key", ":")
		}
	} else {
		if i := strings.IndexByte(rest, ':'); i >= 0 {
			ln.Key, after = rest[:i], rest[i:]
		} else {
			ln.Key = rest
		}
		if ln.Key == "" {
			return syntaxErrf(ln.Pos, "missing key")
		}
	}
	if after == "" || after == ":" {
		// bare "key" and "key:" both mean present with no value
		return nil
	}
	if !strings.HasPrefix(after, ": ") {
		return syntaxErrf(ln.Pos, "expected space after %q", ":")
	}
	val := after[2:]
	if val != "" && val[0] == '"' {
		dec, tail, ok := unquotePrefix(val)
		if !ok || tail != "" {
			return syntaxErrf(ln.Pos, "bad quoted value")
		}
		val = dec
		ln.Quoted = true
	}
	ln.Value = val
	ln.HasValue = true
	return nil
}
