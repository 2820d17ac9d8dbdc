// Package main provides the CLI entry point for xlingest.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ukaji3/xlingest-go/internal/config"
	"github.com/ukaji3/xlingest-go/internal/logging"
	"github.com/ukaji3/xlingest-go/pkg/xlingest"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/parser"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/schema"
)

var (
	configPath string
	schemaPath string
	logLevel   string

	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlingest",
		Short: "Load spreadsheets into typed, validated records",
		Long: `xlingest reads the worksheets named in an XML schema, binds every configured
column to its type and reports the values together with the cells that failed validation.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.config/xlingest/config.toml)")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Schema XML file (overrides schema.path)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newListCmd(), newIngestCmd(), newServeCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	envErr := godotenv.Load()

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if schemaPath != "" {
		loaded.Schema.Path = schemaPath
		loaded.Reader.BaseDir = ""
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	cfg = loaded

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if envErr == nil {
		slog.Debug("loaded .env file")
	}
	return nil
}

// newIngestor wires the schema file and the excelize reader.
func newIngestor() (*xlingest.Ingestor, error) {
	if err := cfg.RequireSchema(); err != nil {
		return nil, err
	}
	src := schema.FileSource(cfg.Schema.Path)

	baseDir := cfg.Reader.BaseDir
	if baseDir == "" {
		baseDir = src.Dir()
	}
	firstRowTitles := cfg.Reader.FirstRowTitles

	opts := xlingest.Options{
		FirstRowAreTitles: &firstRowTitles,
		BaseDir:           baseDir,
		DropInvalidRows:   cfg.Reader.DropInvalidRows,
		Logger:            slog.Default(),
	}
	return xlingest.New(schema.NewResolver(src), parser.ExcelSource{}, opts), nil
}

// useTable decides between table and JSON rendering for w.
func useTable(format string, w io.Writer) bool {
	switch format {
	case "table":
		return true
	case "json":
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
