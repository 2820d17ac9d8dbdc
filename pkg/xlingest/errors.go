package xlingest

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/celltype"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/schema"
)

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("not found")

// Re-exported so callers can branch on every failure from this package.
type (
	ConfigurationError   = schema.ConfigurationError
	UnsupportedTypeError = celltype.UnsupportedTypeError
)

var (
	ErrBadConfiguration = schema.ErrBadConfiguration
	ErrUnsupportedType  = celltype.ErrUnsupportedType
)

// NotFoundError reports a missing spreadsheet definition, file, worksheet or column.
type NotFoundError struct {
	Kind string // "spreadsheet", "file", "worksheet", "column"
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReadError represents a cell source failure for one worksheet.
type ReadError struct {
	Worksheet string
	Path      string
	Err       error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error in worksheet %q of %s: %v", e.Worksheet, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
