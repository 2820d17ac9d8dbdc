package models

// ColumnDefinition describes how one column is addressed and interpreted.
type ColumnDefinition struct {
	// Index is the 1-based column position, or -1 when the column is addressed by name.
	Index int `json:"index"`
	// Name is the column title.
	Name string `json:"name,omitempty"`
	// TypeName selects the parser and validator.
	TypeName string `json:"type"`
	// Process marks the column for ingestion.
	Process bool `json:"process"`
	// AllowEmpty permits blank cells.
	AllowEmpty bool `json:"allow_empty"`
}

// WorksheetDefinition describes one worksheet of a spreadsheet.
type WorksheetDefinition struct {
	// Index is the worksheet position, or -1 when unset.
	Index int `json:"index"`
	// Name is the worksheet name. Empty selects the active sheet.
	Name string `json:"name,omitempty"`
	// Columns lists the column definitions in document order.
	Columns []ColumnDefinition `json:"columns"`
}

// SpreadsheetDefinition is the top-level schema entity, keyed by Name.
type SpreadsheetDefinition struct {
	// Name uniquely identifies the spreadsheet definition.
	Name string `json:"name"`
	// Path is the unresolved location of the spreadsheet file.
	Path string `json:"path"`
	// Worksheets lists the worksheets to read, in document order.
	Worksheets []WorksheetDefinition `json:"worksheets"`
}
