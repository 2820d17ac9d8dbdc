package models

import (
	"encoding/json"
	"math/big"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Kind identifies which variant a TypedValue carries.
type Kind int

const (
	KindString Kind = iota + 1
	KindDecimal
	KindDateTime
	KindTimeSpan
	KindBoolean
)

// DateLayout is the layout used when rendering datetime values.
const DateLayout = "2006-01-02"

// String returns the lower-case kind name used in JSON output.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDecimal:
		return "decimal"
	case KindDateTime:
		return "datetime"
	case KindTimeSpan:
		return "timespan"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// TypedValue is the result of parsing one cell. Only the field matching
// Kind is meaningful.
type TypedValue struct {
	Name     string
	Kind     Kind
	Str      string
	Decimal  pgtype.Numeric
	Time     time.Time
	Duration time.Duration
	Bool     bool
}

// StringValue builds a string TypedValue.
func StringValue(name, s string) TypedValue {
	return TypedValue{Name: name, Kind: KindString, Str: s}
}

// DecimalValue builds a decimal TypedValue.
func DecimalValue(name string, n pgtype.Numeric) TypedValue {
	return TypedValue{Name: name, Kind: KindDecimal, Decimal: n}
}

// DateTimeValue builds a datetime TypedValue.
func DateTimeValue(name string, t time.Time) TypedValue {
	return TypedValue{Name: name, Kind: KindDateTime, Time: t}
}

// TimeSpanValue builds a timespan TypedValue.
func TimeSpanValue(name string, d time.Duration) TypedValue {
	return TypedValue{Name: name, Kind: KindTimeSpan, Duration: d}
}

// BooleanValue builds a boolean TypedValue.
func BooleanValue(name string, b bool) TypedValue {
	return TypedValue{Name: name, Kind: KindBoolean, Bool: b}
}

// ZeroDecimal returns a valid numeric zero.
func ZeroDecimal() pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(0), Valid: true}
}

// Value returns the carried value as a plain Go value.
func (v TypedValue) Value() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindDecimal:
		return v.Decimal
	case KindDateTime:
		return v.Time
	case KindTimeSpan:
		return v.Duration
	case KindBoolean:
		return v.Bool
	default:
		return nil
	}
}

// String renders the value for display.
func (v TypedValue) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindDecimal:
		return DecimalString(v.Decimal)
	case KindDateTime:
		return v.Time.Format(DateLayout)
	case KindTimeSpan:
		return v.Duration.String()
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

type typedValueJSON struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// MarshalJSON encodes the value as {"name", "kind", "value"}. Decimals are
// encoded as exact decimal strings and durations as Go duration strings.
func (v TypedValue) MarshalJSON() ([]byte, error) {
	out := typedValueJSON{Name: v.Name, Kind: v.Kind.String()}
	switch v.Kind {
	case KindString:
		out.Value = v.Str
	case KindDecimal, KindTimeSpan:
		out.Value = v.String()
	case KindDateTime:
		out.Value = v.Time.Format(time.RFC3339)
	case KindBoolean:
		out.Value = v.Bool
	}
	return json.Marshal(out)
}

// DecimalRat converts n to an exact rational. Invalid or special values
// yield nil.
func DecimalRat(n pgtype.Numeric) *big.Rat {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return nil
	}
	r := new(big.Rat).SetInt(n.Int)
	if n.Exp == 0 {
		return r
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(n.Exp))), nil)
	if n.Exp > 0 {
		return r.Mul(r, new(big.Rat).SetInt(scale))
	}
	return r.Quo(r, new(big.Rat).SetInt(scale))
}

// DecimalString renders n with as many fraction digits as it was parsed with.
func DecimalString(n pgtype.Numeric) string {
	r := DecimalRat(n)
	if r == nil {
		return ""
	}
	digits := 0
	if n.Exp < 0 {
		digits = int(-n.Exp)
	}
	return r.FloatString(digits)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
