package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is one typed row of a worksheet.
type Record struct {
	// Row is the source row index (1-based).
	Row int `json:"row"`
	// Values maps the column key to its parsed value.
	Values map[string]TypedValue `json:"values"`
}

// SheetResult holds the typed records of one worksheet.
type SheetResult struct {
	// Worksheet is the worksheet name ("" for the active sheet).
	Worksheet string `json:"worksheet"`
	// Fields lists the column keys in definition order.
	Fields []string `json:"fields"`
	// Records contains one entry per surviving row.
	Records []Record `json:"records"`
	// Errors contains the failed validation outcomes.
	Errors []ValidationOutcome `json:"errors,omitempty"`
}

// IngestResult is the output of loading one spreadsheet definition.
type IngestResult struct {
	// RunID identifies this load.
	RunID uuid.UUID `json:"run_id"`
	// Spreadsheet is the definition name.
	Spreadsheet string `json:"spreadsheet"`
	// Path is the resolved file path.
	Path string `json:"path"`
	// StartedAt is when the load began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the load completed.
	FinishedAt time.Time `json:"finished_at"`
	// Sheets holds per-worksheet results in definition order.
	Sheets []SheetResult `json:"sheets"`
}

// RecordCount returns the number of records across all sheets.
func (r *IngestResult) RecordCount() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Records)
	}
	return n
}

// ErrorCount returns the number of failed validations across all sheets.
func (r *IngestResult) ErrorCount() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Errors)
	}
	return n
}
