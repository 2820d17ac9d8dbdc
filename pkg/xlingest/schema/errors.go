package schema

import (
	"errors"
	"fmt"
)

// ErrBadConfiguration matches every *ConfigurationError.
var ErrBadConfiguration = errors.New("bad configuration")

// ErrSpreadsheetNotFound indicates no definition carries the requested name.
var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

// ConfigurationError reports a structurally incomplete configuration document.
type ConfigurationError struct {
	// Path locates the offending element, e.g. "configuration/spreadsheet[2]/worksheet[1]".
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration %q is not configured correctly: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBadConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrBadConfiguration
}

func configErr(path, reason string, err error) *ConfigurationError {
	return &ConfigurationError{Path: path, Reason: reason, Err: err}
}
