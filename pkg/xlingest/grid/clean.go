// Package grid normalizes raw worksheet cells before they are bound to a schema.
//
// Spreadsheets often carry formatting in unused trailing columns and rows, so
// a cell only counts when its column has a title and its row has at least one
// non-blank cell.
package grid

import (
	"strings"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// Clean drops cells under blank titles and rows that are entirely blank.
// When the title row is missing or blank, every column is kept.
// The relative order of the surviving cells is preserved.
func Clean(raw models.SheetReadResult) []models.Cell {
	cells := raw.Cells
	if titled := titledColumns(raw.Titles); titled != nil {
		cells = make([]models.Cell, 0, len(raw.Cells))
		for _, c := range raw.Cells {
			if titled[c.Column] {
				cells = append(cells, c)
			}
		}
	}

	groups := GroupByRow(cells)
	result := make([]models.Cell, 0, len(cells))
	for _, g := range groups {
		if allBlank(g) {
			continue
		}
		result = append(result, g...)
	}
	return result
}

// GroupByRow splits cells into per-row groups in first-appearance order.
func GroupByRow(cells []models.Cell) [][]models.Cell {
	var groups [][]models.Cell
	pos := make(map[int]int)
	for _, c := range cells {
		i, ok := pos[c.Row]
		if !ok {
			i = len(groups)
			pos[c.Row] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	return groups
}

// titledColumns returns the set of 1-based column ordinals with a non-blank
// title, or nil when no title is usable.
func titledColumns(titles []string) map[int]bool {
	var set map[int]bool
	for i, t := range titles {
		if IsBlank(t) {
			continue
		}
		if set == nil {
			set = make(map[int]bool, len(titles))
		}
		set[i+1] = true
	}
	return set
}

func allBlank(row []models.Cell) bool {
	for _, c := range row {
		if !IsBlank(c.Text) {
			return false
		}
	}
	return true
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
