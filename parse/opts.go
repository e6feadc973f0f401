package parse

import (
	"github.com/muon-data/go-muon/ir"
	"github.com/muon-data/go-muon/token"
)

type Option func(*options)

type options struct {
	positions map[*ir.Node]token.Pos
}

// Positions asks the parser to record the source position of every
// parsed node in m. Downstream consumers use it to attach line numbers
// to field-level errors.
func Positions(m map[*ir.Node]token.Pos) Option {
	return func(o *options) {
		o.positions = m
	}
}

func (o *options) record(n *ir.Node, pos token.Pos) {
	if o.positions != nil {
		o.positions[n] = pos
	}
}
