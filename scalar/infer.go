package scalar

import (
	"github.com/muon-data/go-muon/ir"
)

// Infer interprets raw scalar text without a target type, trying the
// scalar kinds in a fixed order: bool, int, float, date, time,
// datetime. It returns nil when the text is none of them, meaning it
// stays a plain string.
//
// The non-finite spellings (inf, NaN) are deliberately not inferred:
// the writer has no way to emit them as floats, so dynamic readers
// keep them as text.
func Infer(s string) *ir.Node {
	switch s {
	case "true":
		return ir.FromBool(true)
	case "false":
		return ir.FromBool(false)
	}
	if v, err := ParseInt(s, 64); err == nil {
		return ir.FromInt(v)
	}
	if validFloat(s) {
		if v, err := ParseFloat(s, 64); err == nil {
			return ir.FromFloat(v)
		}
	}
	if d, err := ir.ParseDate(s); err == nil {
		return ir.FromDate(d)
	}
	if t, err := ir.ParseTime(s); err == nil {
		return ir.FromTime(t)
	}
	if dt, err := ir.ParseDateTime(s); err == nil {
		return ir.FromDateTime(dt)
	}
	return nil
}
