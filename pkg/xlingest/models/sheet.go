package models

// SheetReadResult is the raw output of reading one worksheet.
type SheetReadResult struct {
	// Titles holds the first row when it is read as a title row.
	Titles []string `json:"titles,omitempty"`
	// Cells holds every remaining grid position in row-major order.
	Cells []Cell `json:"cells"`
}

// WorksheetData is one worksheet after grid cleanup.
type WorksheetData struct {
	// Worksheet is the definition the data was read for.
	Worksheet WorksheetDefinition `json:"worksheet"`
	// Titles is the title row as read from the sheet.
	Titles []string `json:"titles,omitempty"`
	// Cells contains the cleaned cells.
	Cells []Cell `json:"cells"`
}
