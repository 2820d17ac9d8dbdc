package parser

import (
	"strings"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// ReadRows converts a row-major grid into a SheetReadResult. Every position
// inside the data bounds is emitted, blank ones included, so the cleaner sees
// the same grid the workbook shows. With firstRowAreTitles the first row
// becomes the titles and data starts at row 2.
func ReadRows(rows [][]string, firstRowAreTitles bool) models.SheetReadResult {
	lastRow, lastCol := findDataBounds(rows)
	if lastRow < 0 {
		return models.SheetReadResult{}
	}

	var result models.SheetReadResult
	start := 0
	if firstRowAreTitles {
		result.Titles = make([]string, lastCol+1)
		for c := 0; c <= lastCol; c++ {
			result.Titles[c] = cellAt(rows, 0, c)
		}
		start = 1
	}

	for r := start; r <= lastRow; r++ {
		for c := 0; c <= lastCol; c++ {
			result.Cells = append(result.Cells, models.NewCell(r+1, c+1, cellAt(rows, r, c)))
		}
	}
	return result
}

// findDataBounds returns the 0-based index of the last row and the last
// column holding a non-blank value, or -1, -1 for an empty grid.
func findDataBounds(rows [][]string) (lastRow, lastCol int) {
	lastRow, lastCol = -1, -1
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			lastRow = rowIdx
			if colIdx > lastCol {
				lastCol = colIdx
			}
		}
	}
	return lastRow, lastCol
}

// cellAt returns the trimmed value at (r, c), or "" past the end of a
// ragged row.
func cellAt(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return strings.TrimSpace(rows[r][c])
}
