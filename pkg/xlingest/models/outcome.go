package models

import "fmt"

// Status is the verdict of a validation.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusError   Status = "Error"
)

// ValidationOutcome is the verdict for one cell.
type ValidationOutcome struct {
	// Status is Success or Error.
	Status Status `json:"status"`
	// Message is the human-readable verdict including field, row and column.
	Message string `json:"message"`
	// Field is the column name the cell was validated as.
	Field string `json:"field"`
	// Row is the cell row (1-based).
	Row int `json:"row"`
	// Column is the cell column (1-based).
	Column int `json:"column"`
}

// Succeeded builds a Success outcome for the cell.
func Succeeded(field string, c Cell) ValidationOutcome {
	return ValidationOutcome{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%s parsed successfully. Row: %d, Col: %d", field, c.Row, c.Column),
		Field:   field,
		Row:     c.Row,
		Column:  c.Column,
	}
}

// Failed builds an Error outcome for the cell.
func Failed(field string, c Cell) ValidationOutcome {
	return ValidationOutcome{
		Status:  StatusError,
		Message: fmt.Sprintf("%s is in invalid format. Row: %d, Col: %d", field, c.Row, c.Column),
		Field:   field,
		Row:     c.Row,
		Column:  c.Column,
	}
}

// OK reports whether the outcome is a success.
func (o ValidationOutcome) OK() bool {
	return o.Status == StatusSuccess
}
