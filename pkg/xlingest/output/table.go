package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// RenderTable renders one table per worksheet, followed by a table of the
// failed validations when there are any.
func RenderTable(res *models.IngestResult) string {
	var b strings.Builder
	for i, sheet := range res.Sheets {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderSheet(sheet))
		b.WriteString("\n")
		if len(sheet.Errors) > 0 {
			b.WriteString(renderErrors(sheet))
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "%d records, %d invalid cells\n", res.RecordCount(), res.ErrorCount())
	return b.String()
}

// RenderDefinitions renders the spreadsheet definitions of a schema.
func RenderDefinitions(defs []models.SpreadsheetDefinition) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Path", "Worksheets", "Columns"})

	for _, d := range defs {
		names := make([]string, len(d.Worksheets))
		columns := 0
		for i, ws := range d.Worksheets {
			names[i] = ws.Name
			if names[i] == "" {
				names[i] = "#" + strconv.Itoa(ws.Index)
			}
			columns += len(ws.Columns)
		}
		tw.AppendRow(table.Row{d.Name, d.Path, strings.Join(names, ", "), columns})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft}})
	return tw.Render()
}

func renderSheet(sheet models.SheetResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(sheetTitle(sheet))

	header := make(table.Row, 0, len(sheet.Fields)+1)
	header = append(header, "Row")
	for _, f := range sheet.Fields {
		header = append(header, f)
	}
	tw.AppendHeader(header)

	rightAligned := make(map[int]bool)
	for _, rec := range sheet.Records {
		row := make(table.Row, 0, len(sheet.Fields)+1)
		row = append(row, rec.Row)
		for i, f := range sheet.Fields {
			v := rec.Values[f]
			if v.Kind == models.KindDecimal || v.Kind == models.KindTimeSpan {
				rightAligned[i+2] = true
			}
			row = append(row, v.String())
		}
		tw.AppendRow(row)
	}

	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft}}
	for n := range rightAligned {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func renderErrors(sheet models.SheetResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(sheetTitle(sheet) + ": invalid cells")
	tw.AppendHeader(table.Row{"Row", "Col", "Field", "Message"})
	for _, o := range sheet.Errors {
		tw.AppendRow(table.Row{o.Row, o.Column, o.Field, o.Message})
	}
	return tw.Render()
}

func sheetTitle(sheet models.SheetResult) string {
	if sheet.Worksheet == "" {
		return "(active sheet)"
	}
	return sheet.Worksheet
}
