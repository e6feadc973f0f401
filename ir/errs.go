package ir

import "errors"

// Error taxonomy shared by every stage of the pipeline. Callers match with
// errors.Is; the returning package wraps these with position or field path
// context.
var (
	ErrSyntax           = errors.New("syntax error")
	ErrOverflow         = errors.New("overflow")
	ErrMissingField     = errors.New("missing field")
	ErrUnknownField     = errors.New("unknown field")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrUnsupportedValue = errors.New("unsupported value")
)
