package xlingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/parser"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/schema"
)

const testSchema = `<configuration>
  <spreadsheet name="orders" path="book.xlsx">
    <worksheet index="1" name="Orders">
      <column index="1" name="Id" type="String" process="true"/>
      <column name="amount" type="Decimal" process="true"/>
      <column name="Due" type="DateTime" process="true"/>
      <column index="4" type="boolean" process="true"/>
      <column name="Notes" type="ByPass" process="true" allowEmpty="true"/>
      <column name="Legacy" type="No" process="false"/>
    </worksheet>
    <worksheet name="Empty">
      <column index="1" type="String" process="true" allowEmpty="true"/>
    </worksheet>
  </spreadsheet>
  <spreadsheet name="typo" path="book.xlsx">
    <worksheet name="Orders">
      <column name="Id" type="Strnig" process="true"/>
    </worksheet>
  </spreadsheet>
  <spreadsheet name="unsupported" path="book.xlsx">
    <worksheet name="Orders">
      <column name="Id" type="No" process="true"/>
    </worksheet>
  </spreadsheet>
  <spreadsheet name="missing-column" path="book.xlsx">
    <worksheet name="Orders">
      <column name="Total" type="Decimal" process="true"/>
    </worksheet>
  </spreadsheet>
  <spreadsheet name="missing-sheet" path="book.xlsx">
    <worksheet name="Nope">
      <column index="1" type="String" process="true"/>
    </worksheet>
  </spreadsheet>
</configuration>`

type fakeSource struct {
	sheets map[string]models.SheetReadResult
	err    error
	reads  []string
}

func (f *fakeSource) Read(path, worksheetName string, firstRowAreTitles bool) (models.SheetReadResult, error) {
	f.reads = append(f.reads, path+"!"+worksheetName)
	if f.err != nil {
		return models.SheetReadResult{}, f.err
	}
	r, ok := f.sheets[worksheetName]
	if !ok {
		return models.SheetReadResult{}, fmt.Errorf("%w: %q", parser.ErrSheetNotFound, worksheetName)
	}
	if !firstRowAreTitles {
		r.Titles = nil
	}
	return r, nil
}

func cells(r int, texts ...string) []models.Cell {
	out := make([]models.Cell, len(texts))
	for i, t := range texts {
		out[i] = models.NewCell(r, i+1, t)
	}
	return out
}

func newFakeSource() *fakeSource {
	var grid []models.Cell
	grid = append(grid, cells(2, "A-1", "1,234.50", "45", "true", "x", "stray")...)
	grid = append(grid, cells(3, "A-2", "0", "15/03/2020", "Yes", "", "")...)
	grid = append(grid, cells(4, "", "", "", "", "", "junk")...)

	return &fakeSource{sheets: map[string]models.SheetReadResult{
		"Orders": {
			Titles: []string{"Id", "Amount", "Due", "Active", "Notes", ""},
			Cells:  grid,
		},
		"Empty": {},
	}}
}

func newTestIngestor(t *testing.T, src CellSource, opts Options) *Ingestor {
	t.Helper()
	if opts.BaseDir == "" {
		opts.BaseDir = "/data"
	}
	return New(schema.NewResolver(schema.BytesSource(testSchema)), src, opts)
}

func TestIngest(t *testing.T) {
	src := newFakeSource()
	in := newTestIngestor(t, src, DefaultOptions())

	data, err := in.Ingest(context.Background(), "orders")
	require.NoError(t, err)
	require.Len(t, data, 2)

	assert.Equal(t, []string{"/data/book.xlsx!Orders", "/data/book.xlsx!Empty"}, src.reads)

	orders := data[0]
	assert.Equal(t, "Orders", orders.Worksheet.Name)
	assert.Len(t, orders.Titles, 6)
	// Column 6 is untitled and row 4 is blank once it is gone.
	assert.Len(t, orders.Cells, 10)
	for _, c := range orders.Cells {
		assert.NotEqual(t, 6, c.Column)
		assert.NotEqual(t, 4, c.Row)
	}

	assert.Empty(t, data[1].Cells)
}

func TestIngest_NotFound(t *testing.T) {
	in := newTestIngestor(t, newFakeSource(), DefaultOptions())

	_, err := in.Ingest(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, schema.ErrSpreadsheetNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "spreadsheet", nf.Kind)
	assert.Equal(t, "nope", nf.Name)

	_, err = in.Ingest(context.Background(), "missing-sheet")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "worksheet", nf.Kind)
	assert.Equal(t, "Nope", nf.Name)
}

func TestIngest_SourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
	}{
		{"missing file", fmt.Errorf("%w: book.xlsx", parser.ErrFileNotFound), "file"},
		{"other failure", errors.New("zip: not a valid zip file"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestIngestor(t, &fakeSource{err: tt.err}, DefaultOptions())
			_, err := in.Ingest(context.Background(), "orders")
			require.Error(t, err)

			if tt.wantKind != "" {
				var nf *NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, tt.wantKind, nf.Kind)
				assert.Equal(t, "/data/book.xlsx", nf.Name)
				return
			}
			var re *ReadError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, "Orders", re.Worksheet)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestIngest_Canceled(t *testing.T) {
	src := newFakeSource()
	in := newTestIngestor(t, src, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := in.Ingest(ctx, "orders")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.reads)
}

func TestLoad(t *testing.T) {
	in := newTestIngestor(t, newFakeSource(), DefaultOptions())

	res, err := in.Load(context.Background(), "orders")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Equal(t, "orders", res.Spreadsheet)
	assert.Equal(t, "/data/book.xlsx", res.Path)
	assert.False(t, res.FinishedAt.Before(res.StartedAt))
	require.Len(t, res.Sheets, 2)

	sheet := res.Sheets[0]
	assert.Equal(t, []string{"Id", "amount", "Due", "D", "Notes"}, sheet.Fields)
	require.Len(t, sheet.Records, 2)
	assert.Equal(t, 2, res.RecordCount())

	first := sheet.Records[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, "A-1", first.Values["Id"].Str)
	assert.Equal(t, "1234.50", models.DecimalString(first.Values["amount"].Decimal))
	assert.True(t, first.Values["Due"].Time.Equal(time.Date(1900, time.February, 13, 0, 0, 0, 0, time.UTC)))
	assert.True(t, first.Values["D"].Bool)
	assert.Equal(t, models.KindString, first.Values["Notes"].Kind)
	assert.Equal(t, "x", first.Values["Notes"].Str)

	second := sheet.Records[1]
	assert.Equal(t, 3, second.Row)
	assert.True(t, second.Values["Due"].Time.Equal(time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "0", models.DecimalString(second.Values["amount"].Decimal))
	assert.False(t, second.Values["D"].Bool)

	require.Len(t, sheet.Errors, 2)
	assert.Equal(t, "amount is in invalid format. Row: 3, Col: 2", sheet.Errors[0].Message)
	assert.Equal(t, "D is in invalid format. Row: 3, Col: 4", sheet.Errors[1].Message)
	assert.Equal(t, 2, res.ErrorCount())

	assert.Empty(t, res.Sheets[1].Records)
	assert.Empty(t, res.Sheets[1].Errors)
}

func TestLoad_DropInvalidRows(t *testing.T) {
	in := newTestIngestor(t, newFakeSource(), Options{DropInvalidRows: true})

	res, err := in.Load(context.Background(), "orders")
	require.NoError(t, err)

	sheet := res.Sheets[0]
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, 2, sheet.Records[0].Row)
	assert.Len(t, sheet.Errors, 2)
}

func TestLoad_SchemaErrors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		src := newFakeSource()
		in := newTestIngestor(t, src, DefaultOptions())

		_, err := in.Load(context.Background(), "typo")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadConfiguration)
		assert.True(t, IsInvalid(err))

		var ce *ConfigurationError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "typo/Orders/column[1]", ce.Path)
		assert.Empty(t, src.reads, "types are checked before reading")
	})

	t.Run("unsupported type", func(t *testing.T) {
		in := newTestIngestor(t, newFakeSource(), DefaultOptions())

		_, err := in.Load(context.Background(), "unsupported")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedType)
		assert.True(t, IsInvalid(err))

		var ute *UnsupportedTypeError
		require.ErrorAs(t, err, &ute)
		assert.Equal(t, "Id", ute.Field)
	})

	t.Run("missing column", func(t *testing.T) {
		in := newTestIngestor(t, newFakeSource(), DefaultOptions())

		_, err := in.Load(context.Background(), "missing-column")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "column", nf.Kind)
		assert.Equal(t, "Total", nf.Name)
		assert.False(t, IsInvalid(err))
	})

	t.Run("name column without titles", func(t *testing.T) {
		in := newTestIngestor(t, newFakeSource(), Options{FirstRowAreTitles: new(bool)})

		_, err := in.Load(context.Background(), "orders")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOptions_ShouldUseTitles(t *testing.T) {
	yes, no := true, false
	assert.True(t, Options{}.ShouldUseTitles())
	assert.True(t, Options{FirstRowAreTitles: &yes}.ShouldUseTitles())
	assert.False(t, Options{FirstRowAreTitles: &no}.ShouldUseTitles())
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("XLINGEST_TEST_DIR", "/srv/books")

	tests := []struct {
		in      string
		baseDir string
		want    string
	}{
		{"/abs/book.xlsx", "/ignored", "/abs/book.xlsx"},
		{"book.xlsx", "/data", "/data/book.xlsx"},
		{"../book.xlsx", "/data/in", "/data/book.xlsx"},
		{"$XLINGEST_TEST_DIR/book.xlsx", "", "/srv/books/book.xlsx"},
		{"~/book.xlsx", "/data", filepath.Join(home, "book.xlsx")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ResolvePath(tt.in, tt.baseDir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = ResolvePath("", "/data")
	assert.Error(t, err)
}

type listingSource struct {
	*fakeSource
	names []string
}

func (l listingSource) SheetNames(path string) ([]string, error) {
	return l.names, nil
}

const indexedSchema = `<configuration>
  <spreadsheet name="second" path="book.xlsx">
    <worksheet index="2">
      <column index="1" type="String" process="true"/>
    </worksheet>
  </spreadsheet>
  <spreadsheet name="out-of-range" path="book.xlsx">
    <worksheet index="5">
      <column index="1" type="String" process="true"/>
    </worksheet>
  </spreadsheet>
</configuration>`

func TestIngest_WorksheetByIndex(t *testing.T) {
	src := listingSource{fakeSource: newFakeSource(), names: []string{"Empty", "Orders"}}
	in := New(schema.NewResolver(schema.BytesSource(indexedSchema)), src, Options{BaseDir: "/data"})

	data, err := in.Ingest(context.Background(), "second")
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "Orders", data[0].Worksheet.Name)
	assert.Equal(t, 2, data[0].Worksheet.Index)
	assert.Equal(t, []string{"/data/book.xlsx!Orders"}, src.reads)

	_, err = in.Ingest(context.Background(), "out-of-range")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "worksheet", nf.Kind)
	assert.Equal(t, "#5", nf.Name)
	assert.ErrorIs(t, err, parser.ErrSheetNotFound)
}

func TestIngest_WorksheetByIndexWithoutLister(t *testing.T) {
	src := newFakeSource()
	src.sheets[""] = models.SheetReadResult{Cells: cells(1, "current")}
	in := New(schema.NewResolver(schema.BytesSource(indexedSchema)), src, Options{BaseDir: "/data"})

	data, err := in.Ingest(context.Background(), "second")
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Empty(t, data[0].Worksheet.Name)
	assert.Equal(t, []string{"/data/book.xlsx!"}, src.reads)
}
