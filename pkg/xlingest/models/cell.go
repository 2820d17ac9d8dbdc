// Package models defines the data structures shared by the ingestion pipeline.
package models

import "unicode/utf8"

// Cell is one grid position read from a worksheet.
type Cell struct {
	// Row is the row index (1-based).
	Row int `json:"row"`
	// Column is the column index (1-based).
	Column int `json:"column"`
	// Text is the trimmed raw cell text.
	Text string `json:"text"`
	// Length is the number of characters in Text.
	Length int `json:"length"`
}

// NewCell builds a Cell and derives its Length from text.
func NewCell(row, column int, text string) Cell {
	return Cell{
		Row:    row,
		Column: column,
		Text:   text,
		Length: utf8.RuneCountInString(text),
	}
}
