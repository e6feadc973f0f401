// Package ir provides the intermediate representation for MuON documents.
//
// All documents, whether parsed from text or built programmatically, are
// represented as trees of ir.Node. The IR is a closed tagged union: the
// Type field selects which value fields are meaningful.
//
//   - NullType: a key present with no value
//   - BoolType, IntType, FloatType, StringType: scalars
//   - DateType, TimeType, DateTimeType: RFC 3339 calendar/clock scalars
//   - ObjectType: an ordered sequence of key/value fields (keys may repeat)
//   - ArrayType: an ordered sequence of values
//
// The tree is a strict ownership hierarchy: every node is owned by exactly
// one parent, and there are no cross-references or cycles. Parse output
// uses StringType for every scalar value; interpreting those raw strings
// as typed scalars is the job of the bind package, which knows the target
// shape (or, for dynamic decoding, applies inference).
package ir
