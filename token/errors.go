package token

import (
	"fmt"

	"github.com/muon-data/go-muon/ir"
)

// SyntaxError is a positioned tokenizer error. It wraps ir.ErrSyntax so
// callers can match the class with errors.Is.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %s: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ir.ErrSyntax
}

func syntaxErrf(pos Pos, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
