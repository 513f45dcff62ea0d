// Package firestore speaks the document store's REST surface: typed field
// values, structured queries, and document operations.
package firestore

import (
	"strconv"
	"strings"
)

// Value is the store's tagged union over field values. Exactly one variant
// is set. Integers travel as decimal-digit strings in both directions to
// avoid precision loss in the wire protocol, never as native JSON numbers.
type Value struct {
	StringValue    *string `json:"stringValue,omitempty"`
	IntegerValue   *string `json:"integerValue,omitempty"`
	ReferenceValue *string `json:"referenceValue,omitempty"`
}

// String builds a stringValue.
func String(s string) Value { return Value{StringValue: &s} }

// Integer builds an integerValue, encoded as a decimal string.
func Integer(n int64) Value {
	s := strconv.FormatInt(n, 10)
	return Value{IntegerValue: &s}
}

// Reference builds a referenceValue from a full resource path.
func Reference(path string) Value { return Value{ReferenceValue: &path} }

// Str returns the string variant, or "" when absent.
func (v Value) Str() string {
	if v.StringValue == nil {
		return ""
	}
	return *v.StringValue
}

// Int returns the integer variant. An absent variant or a malformed
// decimal string yields 0 rather than an error.
func (v Value) Int() int64 {
	if v.IntegerValue == nil {
		return 0
	}
	n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Document is a stored document: its full resource name plus typed fields.
type Document struct {
	Name   string           `json:"name,omitempty"`
	Fields map[string]Value `json:"fields"`
}

// ID returns the last path segment of the document resource name.
func (d Document) ID() string {
	if i := strings.LastIndexByte(d.Name, '/'); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}

// QueryResult is one element of a runQuery response. Elements without a
// document are no-match markers; mappers skip them.
type QueryResult struct {
	Document *Document `json:"document"`
}
