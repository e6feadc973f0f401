package bind

import "fmt"

// UnmarshalError reports a failure to decode a node into a Go value.
// Err carries the error class (one of the ir sentinels, possibly
// wrapped); Line is the 1-based source line when the parse recorded
// positions, 0 otherwise.
type UnmarshalError struct {
	FieldPath string // dot-joined, e.g. "book.character.name"
	Line      int
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	at := ""
	if e.FieldPath != "" {
		at = " at " + e.FieldPath
	}
	if e.Line > 0 {
		at += fmt.Sprintf(" (line %d)", e.Line)
	}
	return fmt.Sprintf("unmarshal error%s: %s", at, e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// MarshalError reports a failure to encode a Go value as a node.
type MarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}
