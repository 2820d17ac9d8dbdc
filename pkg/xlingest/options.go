// Package xlingest loads spreadsheets into typed, validated records driven by
// a declarative schema.
//
// A schema.Resolver supplies the spreadsheet definitions, a CellSource reads
// the raw worksheet grids, and the celltype registries turn each addressed
// cell into a value plus a validation outcome.
package xlingest

import "log/slog"

// Options configures ingestion behavior.
type Options struct {
	// FirstRowAreTitles reads the first worksheet row as column titles.
	// If nil, defaults to true.
	FirstRowAreTitles *bool
	// BaseDir anchors relative spreadsheet paths. Empty means the working directory.
	BaseDir string
	// DropInvalidRows omits rows with a failed validation from the records.
	// Their outcomes are still reported.
	DropInvalidRows bool
	// Logger receives progress logs. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default ingestion options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldUseTitles returns whether the first row is read as titles.
func (o Options) ShouldUseTitles() bool {
	if o.FirstRowAreTitles != nil {
		return *o.FirstRowAreTitles
	}
	return true
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
