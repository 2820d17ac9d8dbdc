package celltype

import (
	"fmt"
	"time"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// ParseFunc converts one cell into a typed value. It never fails; invalid
// input yields the zero value of the type.
type ParseFunc func(field string, c models.Cell) models.TypedValue

var parsers = map[Type]ParseFunc{
	TypeString:          parseString,
	TypeDecimal:         parseDecimal,
	TypeDateTime:        parseDateTime,
	TypeLiteralTimeSpan: parseLiteralTimeSpan,
	TypeBoolean:         parseBoolean,
}

// ParserFor returns the parse strategy registered for typeName.
func ParserFor(typeName, field string) (ParseFunc, error) {
	t, err := Lookup(typeName)
	if err != nil {
		return nil, err
	}
	return ParserForType(t, field)
}

// ParserForType returns the strategy registered for an already resolved type.
func ParserForType(t Type, field string) (ParseFunc, error) {
	if t == TypeNo {
		return nil, &UnsupportedTypeError{Field: field, Op: "parser"}
	}
	fn, ok := parsers[t]
	if !ok {
		return nil, fmt.Errorf("%w: no parser for %s", ErrUnknownType, t)
	}
	return fn, nil
}

// Parse converts c using the parser registered for typeName.
func Parse(typeName, field string, c models.Cell) (models.TypedValue, error) {
	fn, err := ParserFor(typeName, field)
	if err != nil {
		return models.TypedValue{}, err
	}
	return fn(field, c), nil
}

func parseString(field string, c models.Cell) models.TypedValue {
	return models.StringValue(field, c.Text)
}

func parseDecimal(field string, c models.Cell) models.TypedValue {
	n, err := ParseDecimal(c.Text)
	if err != nil {
		n = models.ZeroDecimal()
	}
	return models.DecimalValue(field, n)
}

func parseDateTime(field string, c models.Cell) models.TypedValue {
	text := dateText(c.Text)
	if serial, ok := ParseSerial(text); ok {
		return models.DateTimeValue(field, SerialToTime(serial))
	}
	t, err := ParseDate(text)
	if err != nil {
		t = time.Time{}
	}
	return models.DateTimeValue(field, t)
}

func parseLiteralTimeSpan(field string, c models.Cell) models.TypedValue {
	d, err := ParseLiteral(ExpandShorthand(c.Text))
	if err != nil {
		d = 0
	}
	return models.TimeSpanValue(field, d)
}

func parseBoolean(field string, c models.Cell) models.TypedValue {
	return models.BooleanValue(field, foldedIn(c.Text, trueWords))
}
