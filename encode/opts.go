package encode

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type Option func(*encState)

// Indent sets the number of spaces per nesting level. Default 2.
func Indent(n int) Option {
	return func(es *encState) {
		if n > 0 {
			es.indent = n
		}
	}
}

// WithColors enables colorized output with the given palette.
func WithColors(c *Colors) Option {
	return func(es *encState) { es.Color = c.Color }
}

// AutoColors enables the default palette when w is a terminal and
// leaves output plain otherwise.
func AutoColors(w io.Writer) Option {
	return func(es *encState) {
		f, ok := w.(*os.File)
		if !ok {
			return
		}
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			es.Color = NewColors().Color
		}
	}
}
