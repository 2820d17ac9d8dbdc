// Package parser reads worksheet cells out of xlsx files.
package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// ErrFileNotFound indicates the workbook path does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the named worksheet is not in the workbook.
var ErrSheetNotFound = errors.New("worksheet not found")

// ExcelSource reads worksheets with excelize. The zero value is ready to use
// and safe for concurrent use; every Read opens its own file handle.
type ExcelSource struct {
	// Password opens encrypted workbooks when set.
	Password string
}

// Read returns the cells of one worksheet. An empty sheetName selects the
// active sheet. Cell values are read unformatted, so date cells arrive as
// serial numbers, and every value is trimmed.
func (s ExcelSource) Read(path, sheetName string, firstRowAreTitles bool) (models.SheetReadResult, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.SheetReadResult{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return models.SheetReadResult{}, err
	}

	f, err := excelize.OpenFile(path, excelize.Options{Password: s.Password})
	if err != nil {
		return models.SheetReadResult{}, err
	}
	defer f.Close()

	sheet, err := resolveSheet(f, sheetName)
	if err != nil {
		return models.SheetReadResult{}, err
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.SheetReadResult{}, err
	}
	return ReadRows(rows, firstRowAreTitles), nil
}

// SheetNames lists the worksheets of the workbook at path in tab order.
func (s ExcelSource) SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path, excelize.Options{Password: s.Password})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func resolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		return f.GetSheetName(f.GetActiveSheetIndex()), nil
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return name, nil
}
