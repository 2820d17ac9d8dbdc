package sink

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/models"
)

// SQLite stores results in a SQLite database.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at dsn and migrates it.
func OpenSQLite(dsn string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; also keeps an in-memory database alive.
	conn.SetMaxOpenConns(1)

	db := &SQLite{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *SQLite) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection.
func (db *SQLite) Conn() *sql.DB {
	return db.conn
}

func (db *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS ingest_runs (
			run_id TEXT PRIMARY KEY,
			spreadsheet TEXT NOT NULL,
			path TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			records INTEGER NOT NULL,
			invalid_cells INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ingest_values (
			run_id TEXT NOT NULL REFERENCES ingest_runs(run_id),
			worksheet TEXT NOT NULL,
			row_num INTEGER NOT NULL,
			field TEXT NOT NULL,
			kind TEXT NOT NULL,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ingest_errors (
			run_id TEXT NOT NULL REFERENCES ingest_runs(run_id),
			worksheet TEXT NOT NULL,
			row_num INTEGER NOT NULL,
			col_num INTEGER NOT NULL,
			field TEXT NOT NULL,
			message TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ingest_values_run ON ingest_values(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ingest_errors_run ON ingest_errors(run_id)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Write stores res in one transaction.
func (db *SQLite) Write(ctx context.Context, res *models.IngestResult) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	runID := res.RunID.String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ingest_runs (run_id, spreadsheet, path, started_at, finished_at, records, invalid_cells)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, res.Spreadsheet, res.Path,
		res.StartedAt.Format(time.RFC3339Nano), res.FinishedAt.Format(time.RFC3339Nano),
		res.RecordCount(), res.ErrorCount(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	valStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ingest_values (run_id, worksheet, row_num, field, kind, value) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare values: %w", err)
	}
	defer valStmt.Close()

	for _, v := range flattenValues(res) {
		if _, err := valStmt.ExecContext(ctx, runID, v.worksheet, v.row, v.field, v.value.Kind.String(), sqliteText(v.value)); err != nil {
			return fmt.Errorf("insert value: %w", err)
		}
	}

	errStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ingest_errors (run_id, worksheet, row_num, col_num, field, message) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare errors: %w", err)
	}
	defer errStmt.Close()

	for _, sheet := range res.Sheets {
		for _, o := range sheet.Errors {
			if _, err := errStmt.ExecContext(ctx, runID, sheet.Worksheet, o.Row, o.Column, o.Field, o.Message); err != nil {
				return fmt.Errorf("insert error: %w", err)
			}
		}
	}

	return tx.Commit()
}

// sqliteText renders v for the value column. Datetimes keep their time of
// day so they sort and compare as text.
func sqliteText(v models.TypedValue) string {
	if v.Kind == models.KindDateTime {
		return v.Time.Format(time.RFC3339)
	}
	return v.String()
}
