package xlingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/celltype"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/grid"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// binding is one processed column ready to be applied to rows.
type binding struct {
	key      string
	col      models.ColumnDefinition
	ordinal  int
	parse    celltype.ParseFunc
	validate celltype.ValidateFunc
}

// Load reads the named spreadsheet and converts every processed column of
// every row into typed values and validation outcomes.
func (in *Ingestor) Load(ctx context.Context, name string) (*models.IngestResult, error) {
	started := time.Now().UTC()
	runID := uuid.New()
	log := in.opts.logger().With("run_id", runID.String(), "spreadsheet", name)

	def, err := in.Definition(name)
	if err != nil {
		return nil, err
	}

	compiled := make([][]binding, len(def.Worksheets))
	for i, ws := range def.Worksheets {
		if compiled[i], err = compileColumns(def.Name, ws); err != nil {
			return nil, err
		}
	}

	path, err := in.Path(def)
	if err != nil {
		return nil, err
	}
	data, err := in.ingest(ctx, def, path)
	if err != nil {
		log.Error("ingest failed", "error", err)
		return nil, err
	}

	result := &models.IngestResult{
		RunID:       runID,
		Spreadsheet: def.Name,
		Path:        path,
		StartedAt:   started,
		Sheets:      make([]models.SheetResult, 0, len(data)),
	}
	for i, wd := range data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := locateColumns(compiled[i], wd.Titles); err != nil {
			return nil, err
		}
		result.Sheets = append(result.Sheets, bindSheet(wd, compiled[i], in.opts.DropInvalidRows))
	}
	result.FinishedAt = time.Now().UTC()

	log.Info("spreadsheet loaded",
		"path", path,
		"sheets", len(result.Sheets),
		"records", result.RecordCount(),
		"invalid_cells", result.ErrorCount(),
		"duration", result.FinishedAt.Sub(started),
	)
	return result, nil
}

// compileColumns resolves the parser and validator of every processed column.
func compileColumns(spreadsheet string, ws models.WorksheetDefinition) ([]binding, error) {
	var out []binding
	for i, col := range ws.Columns {
		if !col.Process {
			continue
		}
		path := fmt.Sprintf("%s/%s/column[%d]", spreadsheet, worksheetLabel(ws), i+1)

		key := columnKey(col)
		if key == "" {
			return nil, &ConfigurationError{Path: path, Reason: "column has neither a name nor a valid index"}
		}

		t, err := celltype.Lookup(col.TypeName)
		if err != nil {
			return nil, &ConfigurationError{Path: path, Reason: fmt.Sprintf("unknown type %q", col.TypeName), Err: err}
		}

		parseType := t
		if t == celltype.TypeByPass {
			parseType = celltype.TypeString
		}
		parse, err := celltype.ParserForType(parseType, key)
		if err != nil {
			return nil, err
		}
		validate, err := celltype.ValidatorForType(t, key)
		if err != nil {
			return nil, err
		}

		out = append(out, binding{key: key, col: col, parse: parse, validate: validate})
	}
	return out, nil
}

// locateColumns fixes the column ordinal of every binding. Index wins over
// Name; names match the titles exactly first, then case-insensitively.
func locateColumns(bindings []binding, titles []string) error {
	for i := range bindings {
		b := &bindings[i]
		if b.col.Index >= 1 {
			b.ordinal = b.col.Index
			continue
		}
		ord := titleOrdinal(titles, b.col.Name)
		if ord == 0 {
			return &NotFoundError{Kind: "column", Name: b.col.Name}
		}
		b.ordinal = ord
	}
	return nil
}

func titleOrdinal(titles []string, name string) int {
	for i, t := range titles {
		if t == name {
			return i + 1
		}
	}
	for i, t := range titles {
		if strings.EqualFold(t, name) {
			return i + 1
		}
	}
	return 0
}

// bindSheet applies the bindings to every cleaned row.
func bindSheet(wd models.WorksheetData, bindings []binding, dropInvalid bool) models.SheetResult {
	sr := models.SheetResult{
		Worksheet: wd.Worksheet.Name,
		Fields:    make([]string, len(bindings)),
		Records:   []models.Record{},
	}
	for i, b := range bindings {
		sr.Fields[i] = b.key
	}

	for _, row := range grid.GroupByRow(wd.Cells) {
		rowNum := row[0].Row
		byColumn := make(map[int]models.Cell, len(row))
		for _, c := range row {
			byColumn[c.Column] = c
		}

		rec := models.Record{Row: rowNum, Values: make(map[string]models.TypedValue, len(bindings))}
		invalid := false
		for _, b := range bindings {
			c, ok := byColumn[b.ordinal]
			if !ok {
				c = models.NewCell(rowNum, b.ordinal, "")
			}
			rec.Values[b.key] = b.parse(b.key, c)
			if outcome := b.validate(b.key, c, b.col.AllowEmpty); !outcome.OK() {
				sr.Errors = append(sr.Errors, outcome)
				invalid = true
			}
		}

		if invalid && dropInvalid {
			continue
		}
		sr.Records = append(sr.Records, rec)
	}
	return sr
}

// columnKey names a column in records: its Name, or its A1 letter.
func columnKey(col models.ColumnDefinition) string {
	if col.Name != "" {
		return col.Name
	}
	if col.Index < 1 {
		return ""
	}
	letter, err := excelize.ColumnNumberToName(col.Index)
	if err != nil {
		return ""
	}
	return letter
}

func worksheetLabel(ws models.WorksheetDefinition) string {
	if ws.Name != "" {
		return ws.Name
	}
	return fmt.Sprintf("worksheet[%d]", ws.Index)
}

// IsInvalid reports whether err stems from the schema rather than the data
// or the environment.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrBadConfiguration) || errors.Is(err, ErrUnsupportedType)
}
