package muon

import (
	"bytes"
	"io"

	"github.com/muon-data/go-muon/bind"
	"github.com/muon-data/go-muon/encode"
	"github.com/muon-data/go-muon/ir"
	"github.com/muon-data/go-muon/parse"
	"github.com/muon-data/go-muon/token"
)

// Error classes, re-exported for callers that only import the root
// package. Match with errors.Is.
var (
	ErrSyntax           = ir.ErrSyntax
	ErrOverflow         = ir.ErrOverflow
	ErrMissingField     = ir.ErrMissingField
	ErrUnknownField     = ir.ErrUnknownField
	ErrTypeMismatch     = ir.ErrTypeMismatch
	ErrUnsupportedValue = ir.ErrUnsupportedValue
)

type Option func(*config)

type config struct {
	strict bool
	indent int
}

// Strict makes Unmarshal fail on document fields the target type does
// not declare.
func Strict() Option {
	return func(c *config) { c.strict = true }
}

// Indent sets the output indent width. Default 2.
func Indent(n int) Option {
	return func(c *config) { c.indent = n }
}

func newConfig(opts []Option) *config {
	c := &config{indent: 2}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Unmarshal decodes MuON text into v, which must be a non-nil
// pointer. Decode into *ir.Node or map[string]any for dynamic access
// without a target type.
func Unmarshal(data []byte, v any, opts ...Option) error {
	c := newConfig(opts)
	positions := map[*ir.Node]token.Pos{}
	node, err := parse.Parse(data, parse.Positions(positions))
	if err != nil {
		return err
	}
	bopts := []bind.Option{bind.Positions(positions)}
	if c.strict {
		bopts = append(bopts, bind.Strict())
	}
	return bind.FromNode(node, v, bopts...)
}

// Marshal encodes v as MuON text. The top-level value must encode to
// an object: a struct, a map, or an *ir.Node object.
func Marshal(v any, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	node, err := bind.ToNode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, encode.Indent(c.indent)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decoder reads one MuON document from a stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the remainder of the stream and decodes it into v.
// Read errors are returned as-is, without a MuON error class.
func (d *Decoder) Decode(v any) error {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return Unmarshal(data, v, d.opts...)
}

// Encoder writes MuON documents to a stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

func (e *Encoder) Encode(v any) error {
	data, err := Marshal(v, e.opts...)
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}
