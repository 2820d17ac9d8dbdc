// Package sink persists ingestion results.
//
// Every run is stored as one row in ingest_runs, one row per typed value in
// ingest_values and one row per failed validation in ingest_errors.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// ErrUnknownDriver indicates an unsupported sink driver name.
var ErrUnknownDriver = errors.New("unknown sink driver")

// Writer stores ingestion results.
type Writer interface {
	Write(ctx context.Context, res *models.IngestResult) error
	Close() error
}

// Open returns the Writer for driver. An empty driver yields Discard.
func Open(ctx context.Context, driver, dsn string) (Writer, error) {
	switch driver {
	case "":
		return Discard{}, nil
	case "sqlite":
		return OpenSQLite(dsn)
	case "postgres", "postgresql":
		return NewPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Discard drops every result.
type Discard struct{}

func (Discard) Write(context.Context, *models.IngestResult) error { return nil }
func (Discard) Close() error                                       { return nil }

// valueRow is one typed value flattened for storage.
type valueRow struct {
	worksheet string
	row       int
	field     string
	value     models.TypedValue
}

// flattenValues lists the values of res in sheet, record and field order.
func flattenValues(res *models.IngestResult) []valueRow {
	var out []valueRow
	for _, sheet := range res.Sheets {
		for _, rec := range sheet.Records {
			for _, f := range sheet.Fields {
				v, ok := rec.Values[f]
				if !ok {
					continue
				}
				out = append(out, valueRow{worksheet: sheet.Worksheet, row: rec.Row, field: f, value: v})
			}
		}
	}
	return out
}
