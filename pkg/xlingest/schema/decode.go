// Package schema resolves the declarative ingestion configuration.
//
// The document has the shape
//
//	<configuration>
//	  <spreadsheet name="orders" path="data/orders.xlsx">
//	    <worksheet index="1" name="Orders">
//	      <column index="1" name="Id" type="String" process="true"/>
//	      <column name="Amount" type="Decimal" process="true" allowEmpty="false"/>
//	    </worksheet>
//	  </spreadsheet>
//	</configuration>
//
// Unknown elements and attributes are ignored. Parsing is structural only:
// type names are not checked here.
package schema

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

const rootElement = "configuration"

// Decode parses a configuration document into spreadsheet definitions in
// document order. It fails with *ConfigurationError when the document is
// malformed or structurally incomplete.
func Decode(r io.Reader) ([]models.SpreadsheetDefinition, error) {
	var (
		defs  []models.SpreadsheetDefinition
		stack []string
	)

	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, configErr(rootElement, "malformed document", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			if err := decodeElement(&defs, stack, t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(defs) == 0 {
		return nil, configErr(rootElement, "no spreadsheet elements", nil)
	}
	return defs, nil
}

// decodeElement handles one start element given the path of element names
// leading to it.
func decodeElement(defs *[]models.SpreadsheetDefinition, stack []string, se xml.StartElement) error {
	if len(stack) < 2 || stack[0] != rootElement || stack[1] != "spreadsheet" {
		return nil
	}

	switch {
	case len(stack) == 2:
		path := fmt.Sprintf("%s/spreadsheet[%d]", rootElement, len(*defs)+1)
		def, err := decodeSpreadsheet(path, attrs(se))
		if err != nil {
			return err
		}
		*defs = append(*defs, def)

	case len(stack) == 3 && stack[2] == "worksheet":
		sp := &(*defs)[len(*defs)-1]
		path := fmt.Sprintf("%s/spreadsheet[%d]/worksheet[%d]", rootElement, len(*defs), len(sp.Worksheets)+1)
		ws, err := decodeWorksheet(path, attrs(se))
		if err != nil {
			return err
		}
		sp.Worksheets = append(sp.Worksheets, ws)

	case len(stack) == 4 && stack[2] == "worksheet" && stack[3] == "column":
		sp := &(*defs)[len(*defs)-1]
		ws := &sp.Worksheets[len(sp.Worksheets)-1]
		path := fmt.Sprintf("%s/spreadsheet[%d]/worksheet[%d]/column[%d]",
			rootElement, len(*defs), len(sp.Worksheets), len(ws.Columns)+1)
		col, err := decodeColumn(path, attrs(se))
		if err != nil {
			return err
		}
		ws.Columns = append(ws.Columns, col)
	}
	return nil
}

func decodeSpreadsheet(path string, a map[string]string) (models.SpreadsheetDefinition, error) {
	def := models.SpreadsheetDefinition{Name: a["name"], Path: a["path"]}
	if def.Name == "" {
		return def, configErr(path, "missing name", nil)
	}
	if def.Path == "" {
		return def, configErr(path, "missing path", nil)
	}
	return def, nil
}

func decodeWorksheet(path string, a map[string]string) (models.WorksheetDefinition, error) {
	ws := models.WorksheetDefinition{Index: -1, Name: a["name"]}
	raw, hasIndex := a["index"]
	if !hasIndex && ws.Name == "" {
		return ws, configErr(path, "missing both index and name", nil)
	}
	if hasIndex {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return ws, configErr(path, "invalid index", err)
		}
		ws.Index = idx
	}
	return ws, nil
}

func decodeColumn(path string, a map[string]string) (models.ColumnDefinition, error) {
	col := models.ColumnDefinition{Index: -1, Name: a["name"], TypeName: a["type"]}

	raw, hasIndex := a["index"]
	if !hasIndex && col.Name == "" {
		return col, configErr(path, "missing both index and name", nil)
	}
	if col.TypeName == "" {
		return col, configErr(path, "missing type", nil)
	}
	process, hasProcess := a["process"]
	allowEmpty, hasAllowEmpty := a["allowEmpty"]
	if !hasProcess && !hasAllowEmpty {
		return col, configErr(path, "missing both process and allowEmpty", nil)
	}

	if hasIndex {
		idx, err := columnIndex(raw)
		if err != nil {
			return col, configErr(path, "invalid index", err)
		}
		col.Index = idx
	}

	var err error
	if hasProcess {
		if col.Process, err = strconv.ParseBool(process); err != nil {
			return col, configErr(path, "invalid process", err)
		}
	}
	if hasAllowEmpty {
		if col.AllowEmpty, err = strconv.ParseBool(allowEmpty); err != nil {
			return col, configErr(path, "invalid allowEmpty", err)
		}
	}
	return col, nil
}

// columnIndex accepts a base-10 ordinal or an A1 column letter ("C" is 3).
func columnIndex(raw string) (int, error) {
	if idx, err := strconv.Atoi(raw); err == nil {
		return idx, nil
	}
	return excelize.ColumnNameToNumber(raw)
}

// attrs collects the non-empty attributes of se by local name.
func attrs(se xml.StartElement) map[string]string {
	m := make(map[string]string, len(se.Attr))
	for _, attr := range se.Attr {
		if attr.Value == "" {
			continue
		}
		m[attr.Name.Local] = attr.Value
	}
	return m
}
