package celltype

import (
	"fmt"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// ValidateFunc checks one cell and returns its verdict.
type ValidateFunc func(field string, c models.Cell, allowEmpty bool) models.ValidationOutcome

var validators = map[Type]ValidateFunc{
	TypeString:          validateString,
	TypeDecimal:         validateDecimal,
	TypeDateTime:        validateDateTime,
	TypeLiteralTimeSpan: validateLiteralTimeSpan,
	TypeBoolean:         validateBoolean,
	TypeByPass:          validateByPass,
}

// ValidatorFor returns the validation strategy registered for typeName.
func ValidatorFor(typeName, field string) (ValidateFunc, error) {
	t, err := Lookup(typeName)
	if err != nil {
		return nil, err
	}
	return ValidatorForType(t, field)
}

// ValidatorForType returns the strategy registered for an already resolved type.
func ValidatorForType(t Type, field string) (ValidateFunc, error) {
	if t == TypeNo {
		return nil, &UnsupportedTypeError{Field: field, Op: "validator"}
	}
	fn, ok := validators[t]
	if !ok {
		return nil, fmt.Errorf("%w: no validator for %s", ErrUnknownType, t)
	}
	return fn, nil
}

// Validate checks c using the validator registered for typeName.
func Validate(typeName, field string, c models.Cell, allowEmpty bool) (models.ValidationOutcome, error) {
	fn, err := ValidatorFor(typeName, field)
	if err != nil {
		return models.ValidationOutcome{}, err
	}
	return fn(field, c, allowEmpty), nil
}

func validateByPass(field string, c models.Cell, _ bool) models.ValidationOutcome {
	return models.Succeeded(field, c)
}

func validateString(field string, c models.Cell, allowEmpty bool) models.ValidationOutcome {
	if !allowEmpty && c.Text == "" {
		return models.Failed(field, c)
	}
	return models.Succeeded(field, c)
}

func validateDecimal(field string, c models.Cell, allowEmpty bool) models.ValidationOutcome {
	if !allowEmpty && c.Text == "" {
		return models.Failed(field, c)
	}
	n, err := ParseDecimal(c.Text)
	if err != nil {
		return models.Failed(field, c)
	}
	if r := models.DecimalRat(n); r == nil || r.Cmp(one) < 0 {
		return models.Failed(field, c)
	}
	return models.Succeeded(field, c)
}

// validateDateTime ignores allowEmpty: an empty cell reads as the minimum
// date, which is always well formed.
func validateDateTime(field string, c models.Cell, _ bool) models.ValidationOutcome {
	text := dateText(c.Text)
	if serial, ok := ParseSerial(text); ok {
		if serial < 1 {
			return models.Failed(field, c)
		}
		return models.Succeeded(field, c)
	}
	if _, err := ParseDate(text); err != nil {
		return models.Failed(field, c)
	}
	return models.Succeeded(field, c)
}

func validateLiteralTimeSpan(field string, c models.Cell, allowEmpty bool) models.ValidationOutcome {
	if !allowEmpty && c.Text == "" {
		return models.Failed(field, c)
	}
	d, err := ParseLiteral(ExpandShorthand(c.Text))
	if err != nil || d == 0 {
		return models.Failed(field, c)
	}
	return models.Succeeded(field, c)
}

func validateBoolean(field string, c models.Cell, _ bool) models.ValidationOutcome {
	if !foldedIn(c.Text, trueWords) && !foldedIn(c.Text, falseWords) {
		return models.Failed(field, c)
	}
	return models.Succeeded(field, c)
}
