package celltype

import (
	"errors"
	"fmt"
)

// ErrUnknownType indicates a type name that is not registered at all.
var ErrUnknownType = errors.New("unknown cell type")

// ErrUnsupportedType indicates the explicit "No" type was reached.
var ErrUnsupportedType = errors.New("unsupported cell type")

// UnsupportedTypeError is returned when a field uses the "No" type.
type UnsupportedTypeError struct {
	Field string
	Op    string // "parser" or "validator"
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("there is no %s for %s", e.Op, e.Field)
}

// Is makes errors.Is(err, ErrUnsupportedType) match.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
