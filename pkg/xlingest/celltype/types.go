// Package celltype turns raw cell text into typed values and validation
// verdicts.
//
// Parsing is lenient: a malformed cell degrades to the zero value of its type
// so callers always get a value to work with. Validation is strict and
// reports precise per-cell diagnostics. The two registries are read-only
// package-level tables and are safe for concurrent use.
//
// Type names are looked up case-sensitively. Every type is registered under a
// canonical and a lower-case name:
//
//	String, Decimal, DateTime, LiteralTimeSpan, Boolean, ByPass, No
//
// "No" marks a column with deliberately no implementation; using it yields an
// [UnsupportedTypeError].
package celltype

import "fmt"

// Type is the enumerated cell type a type name resolves to.
type Type int

const (
	TypeString Type = iota + 1
	TypeDecimal
	TypeDateTime
	TypeLiteralTimeSpan
	TypeBoolean
	TypeByPass
	TypeNo
)

var canonicalNames = map[Type]string{
	TypeString:          "String",
	TypeDecimal:         "Decimal",
	TypeDateTime:        "DateTime",
	TypeLiteralTimeSpan: "LiteralTimeSpan",
	TypeBoolean:         "Boolean",
	TypeByPass:          "ByPass",
	TypeNo:              "No",
}

// typeNames maps every accepted spelling to its type.
var typeNames = map[string]Type{
	"String":          TypeString,
	"string":          TypeString,
	"Decimal":         TypeDecimal,
	"decimal":         TypeDecimal,
	"DateTime":        TypeDateTime,
	"dateTime":        TypeDateTime,
	"datetime":        TypeDateTime,
	"LiteralTimeSpan": TypeLiteralTimeSpan,
	"literaltimespan": TypeLiteralTimeSpan,
	"TimespanLiteral": TypeLiteralTimeSpan,
	"timespanLiteral": TypeLiteralTimeSpan,
	"timespanliteral": TypeLiteralTimeSpan,
	"Boolean":         TypeBoolean,
	"boolean":         TypeBoolean,
	"ByPass":          TypeByPass,
	"byPass":          TypeByPass,
	"bypass":          TypeByPass,
	"No":              TypeNo,
	"no":              TypeNo,
}

// String returns the canonical type name.
func (t Type) String() string {
	if name, ok := canonicalNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Lookup resolves a type name. Unregistered names return an error matching
// ErrUnknownType.
func Lookup(name string) (Type, error) {
	t, ok := typeNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// CanonicalNames returns the canonical name of every type in declaration order.
func CanonicalNames() []string {
	names := make([]string, 0, len(canonicalNames))
	for t := TypeString; t <= TypeNo; t++ {
		names = append(names, canonicalNames[t])
	}
	return names
}
