package sink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS ingest_runs (
	run_id        uuid PRIMARY KEY,
	spreadsheet   text NOT NULL,
	path          text NOT NULL,
	started_at    timestamptz NOT NULL,
	finished_at   timestamptz NOT NULL,
	records       integer NOT NULL,
	invalid_cells integer NOT NULL
);
CREATE TABLE IF NOT EXISTS ingest_values (
	run_id         uuid NOT NULL REFERENCES ingest_runs(run_id) ON DELETE CASCADE,
	worksheet      text NOT NULL,
	row_num        integer NOT NULL,
	field          text NOT NULL,
	kind           text NOT NULL,
	text_value     text,
	numeric_value  numeric,
	time_value     timestamptz,
	interval_value interval,
	bool_value     boolean
);
CREATE TABLE IF NOT EXISTS ingest_errors (
	run_id    uuid NOT NULL REFERENCES ingest_runs(run_id) ON DELETE CASCADE,
	worksheet text NOT NULL,
	row_num   integer NOT NULL,
	col_num   integer NOT NULL,
	field     text NOT NULL,
	message   text NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ingest_values_run ON ingest_values(run_id);
CREATE INDEX IF NOT EXISTS idx_ingest_errors_run ON ingest_errors(run_id);
`

var (
	valueColumns = []string{"run_id", "worksheet", "row_num", "field", "kind",
		"text_value", "numeric_value", "time_value", "interval_value", "bool_value"}
	errorColumns = []string{"run_id", "worksheet", "row_num", "col_num", "field", "message"}
)

// Postgres stores results in PostgreSQL, bulk-loading values with COPY.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to dsn and ensures the schema exists.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	pg := &Postgres{pool: pool}
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pg, nil
}

// EnsureSchema creates the result tables when missing.
func (pg *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := pg.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close closes the pool.
func (pg *Postgres) Close() error {
	pg.pool.Close()
	return nil
}

// Write stores res in one transaction.
func (pg *Postgres) Write(ctx context.Context, res *models.IngestResult) error {
	tx, err := pg.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	runID := pgtype.UUID{Bytes: [16]byte(res.RunID), Valid: true}
	if _, err := tx.Exec(ctx,
		`INSERT INTO ingest_runs (run_id, spreadsheet, path, started_at, finished_at, records, invalid_cells)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		runID, res.Spreadsheet, res.Path, res.StartedAt, res.FinishedAt, res.RecordCount(), res.ErrorCount(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if rows := valueCopyRows(runID, res); len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"ingest_values"}, valueColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy values: %w", err)
		}
	}
	if rows := errorCopyRows(runID, res); len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"ingest_errors"}, errorColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy errors: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// valueCopyRows builds the COPY rows for ingest_values. Only the column that
// matches the value kind is set; the others are NULL.
func valueCopyRows(runID pgtype.UUID, res *models.IngestResult) [][]any {
	flat := flattenValues(res)
	rows := make([][]any, 0, len(flat))
	for _, f := range flat {
		var (
			txt  pgtype.Text
			num  pgtype.Numeric
			ts   pgtype.Timestamptz
			ival pgtype.Interval
			b    pgtype.Bool
		)
		switch v := f.value; v.Kind {
		case models.KindString:
			txt = pgtype.Text{String: v.Str, Valid: true}
		case models.KindDecimal:
			num = v.Decimal
		case models.KindDateTime:
			ts = pgtype.Timestamptz{Time: v.Time, Valid: true}
		case models.KindTimeSpan:
			ival = pgtype.Interval{Microseconds: v.Duration.Microseconds(), Valid: true}
		case models.KindBoolean:
			b = pgtype.Bool{Bool: v.Bool, Valid: true}
		}
		rows = append(rows, []any{runID, f.worksheet, int32(f.row), f.field, f.value.Kind.String(), txt, num, ts, ival, b})
	}
	return rows
}

func errorCopyRows(runID pgtype.UUID, res *models.IngestResult) [][]any {
	var rows [][]any
	for _, sheet := range res.Sheets {
		for _, o := range sheet.Errors {
			rows = append(rows, []any{runID, sheet.Worksheet, int32(o.Row), int32(o.Column), o.Field, o.Message})
		}
	}
	return rows
}
