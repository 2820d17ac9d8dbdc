package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/output"
	"github.com/ukaji3/xlingest-go/pkg/xlingest/sink"
)

var (
	outputPath    string
	outputFormat  string
	pretty        bool
	dropInvalid   bool
	failOnInvalid bool
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <spreadsheet>",
		Short: "Load one spreadsheet and print its records",
		Args:  cobra.ExactArgs(1),
		RunE:  runIngest,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&outputFormat, "format", "", "Output format: auto, json, table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&dropInvalid, "drop-invalid", false, "Omit rows with invalid cells from the records")
	cmd.Flags().BoolVar(&failOnInvalid, "fail-on-invalid", false, "Exit with an error when any cell is invalid")
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if cmd.Flags().Changed("drop-invalid") {
		cfg.Reader.DropInvalidRows = dropInvalid
	}
	if !cmd.Flags().Changed("pretty") {
		pretty = cfg.Output.Pretty
	}
	format := outputFormat
	if format == "" {
		format = cfg.Output.Format
	}
	switch format {
	case "auto", "json", "table":
	default:
		return fmt.Errorf("invalid format: %s (must be auto, json, or table)", format)
	}

	in, err := newIngestor()
	if err != nil {
		return err
	}

	res, err := in.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	w, err := sink.Open(ctx, cfg.Sink.Driver, cfg.Sink.DSN)
	if err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	defer w.Close()
	if err := w.Write(ctx, res); err != nil {
		return fmt.Errorf("store result: %w", err)
	}

	// Files get JSON unless a table is asked for explicitly.
	asTable := useTable(format, cmd.OutOrStdout())
	if outputPath != "" && format == "auto" {
		asTable = false
	}

	var data []byte
	if asTable {
		data = []byte(output.RenderTable(res))
	} else {
		if data, err = output.ToJSON(res, pretty); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		data = append(data, '\n')
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	}

	if failOnInvalid && res.ErrorCount() > 0 {
		return fmt.Errorf("%d invalid cells in %s", res.ErrorCount(), res.Spreadsheet)
	}
	return nil
}
