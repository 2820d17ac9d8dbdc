package xlingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/grid"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/parser"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/schema"
)

// CellSource reads the raw grid of one worksheet. An empty worksheetName
// selects the workbook's current sheet. Implementations report a missing
// file with parser.ErrFileNotFound and a missing sheet with
// parser.ErrSheetNotFound.
type CellSource interface {
	Read(path, worksheetName string, firstRowAreTitles bool) (models.SheetReadResult, error)
}

// SheetLister is implemented by cell sources that can list a workbook's
// worksheets in tab order. Ingestor uses it to read worksheets defined only
// by their 1-based index.
type SheetLister interface {
	SheetNames(path string) ([]string, error)
}

// Ingestor loads spreadsheets named in a schema. It is safe for concurrent
// use when its CellSource is.
type Ingestor struct {
	resolver *schema.Resolver
	source   CellSource
	opts     Options
}

// New returns an Ingestor. A nil source defaults to parser.ExcelSource.
func New(resolver *schema.Resolver, source CellSource, opts Options) *Ingestor {
	if source == nil {
		source = parser.ExcelSource{}
	}
	return &Ingestor{resolver: resolver, source: source, opts: opts}
}

// Spreadsheets returns every spreadsheet definition of the schema.
func (in *Ingestor) Spreadsheets() ([]models.SpreadsheetDefinition, error) {
	return in.resolver.Resolve()
}

// Definition returns the first spreadsheet definition named name.
func (in *Ingestor) Definition(name string) (models.SpreadsheetDefinition, error) {
	def, err := in.resolver.Lookup(name)
	if errors.Is(err, schema.ErrSpreadsheetNotFound) {
		return def, &NotFoundError{Kind: "spreadsheet", Name: name, Err: err}
	}
	return def, err
}

// Path returns the resolved file location of def.
func (in *Ingestor) Path(def models.SpreadsheetDefinition) (string, error) {
	return ResolvePath(def.Path, in.opts.BaseDir)
}

// Ingest reads every worksheet of the named spreadsheet and returns the
// cleaned grids in definition order.
func (in *Ingestor) Ingest(ctx context.Context, name string) ([]models.WorksheetData, error) {
	def, err := in.Definition(name)
	if err != nil {
		return nil, err
	}
	path, err := in.Path(def)
	if err != nil {
		return nil, err
	}
	return in.ingest(ctx, def, path)
}

func (in *Ingestor) ingest(ctx context.Context, def models.SpreadsheetDefinition, path string) ([]models.WorksheetData, error) {
	log := in.opts.logger()
	data := make([]models.WorksheetData, 0, len(def.Worksheets))

	for _, declared := range def.Worksheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ws, err := in.sheetFor(declared, path)
		if err != nil {
			return nil, err
		}

		raw, err := in.source.Read(path, ws.Name, in.opts.ShouldUseTitles())
		if err != nil {
			return nil, readError(ws, path, err)
		}

		cells := grid.Clean(raw)
		log.Debug("worksheet read",
			"spreadsheet", def.Name,
			"worksheet", ws.Name,
			"raw_cells", len(raw.Cells),
			"cells", len(cells),
		)
		data = append(data, models.WorksheetData{
			Worksheet: ws,
			Titles:    raw.Titles,
			Cells:     cells,
		})
	}
	return data, nil
}

// sheetFor names a worksheet defined only by index. Without a SheetLister
// the name stays empty and the source reads its current sheet.
func (in *Ingestor) sheetFor(ws models.WorksheetDefinition, path string) (models.WorksheetDefinition, error) {
	lister, ok := in.source.(SheetLister)
	if ws.Name != "" || ws.Index < 1 || !ok {
		return ws, nil
	}

	names, err := lister.SheetNames(path)
	if err != nil {
		return ws, readError(ws, path, err)
	}
	if ws.Index > len(names) {
		return ws, &NotFoundError{
			Kind: "worksheet",
			Name: fmt.Sprintf("#%d", ws.Index),
			Err:  fmt.Errorf("%w: workbook has %d sheets", parser.ErrSheetNotFound, len(names)),
		}
	}
	ws.Name = names[ws.Index-1]
	return ws, nil
}

func readError(ws models.WorksheetDefinition, path string, err error) error {
	switch {
	case errors.Is(err, parser.ErrFileNotFound):
		return &NotFoundError{Kind: "file", Name: path, Err: err}
	case errors.Is(err, parser.ErrSheetNotFound):
		return &NotFoundError{Kind: "worksheet", Name: ws.Name, Err: err}
	default:
		return &ReadError{Worksheet: ws.Name, Path: path, Err: err}
	}
}
