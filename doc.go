// Package muon reads and writes MuON, an indentation-structured data
// format of key/value lines.
//
//	book: The Left Hand of Darkness
//	author: Ursula K. Le Guin
//	year: 1969
//
// Documents decode into structs tagged with `muon:"..."`, into
// map[string]any, or into *ir.Node for untyped access:
//
//	type Book struct {
//		Title  string `muon:"book"`
//		Author string
//		Year   *uint16
//	}
//
//	var b Book
//	err := muon.Unmarshal(data, &b)
//
// Repeated lines with the same key form lists, nested records indent
// one level, and pointer fields distinguish an absent key from one
// present with no value. Marshal is the inverse; its output always
// parses back to the values that produced it.
//
// The pipeline underneath is exposed as separate packages: token
// (lines), parse (trees), ir (the node model), scalar (scalar codec),
// bind (reflection mapping), encode (writing) and conv (JSON/YAML
// bridges).
package muon
