package bind

import (
	"github.com/muon-data/go-muon/ir"
	"github.com/muon-data/go-muon/token"
)

type Option func(*options)

type options struct {
	strict    bool
	positions map[*ir.Node]token.Pos
}

// Strict makes document fields with no matching target field an
// error instead of being ignored.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// Positions supplies the node position map recorded by
// parse.Positions, so decode errors can name source lines.
func Positions(m map[*ir.Node]token.Pos) Option {
	return func(o *options) { o.positions = m }
}

func (o *options) line(n *ir.Node) int {
	if o.positions == nil {
		return 0
	}
	return o.positions[n].Line
}
