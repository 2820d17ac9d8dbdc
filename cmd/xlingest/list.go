package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/xlingest-go/pkg/xlingest/output"
)

func newListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the spreadsheets defined in the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := newIngestor()
			if err != nil {
				return err
			}
			defs, err := in.Spreadsheets()
			if err != nil {
				return fmt.Errorf("resolve schema: %w", err)
			}

			out := cmd.OutOrStdout()
			if format == "" {
				format = cfg.Output.Format
			}
			if useTable(format, out) {
				fmt.Fprintln(out, output.RenderDefinitions(defs))
				return nil
			}
			data, err := output.DefinitionsToJSON(defs, cfg.Output.Pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format: auto, json, table")
	return cmd
}
