package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tordrt/birdmap"
	"github.com/tordrt/birdmap/internal/formatter"
)

func newInspectCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Extract and classify a single database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := birdmap.AnalyzeFile(context.Background(), args[0], nil)
			if err != nil {
				return err
			}
			for _, issue := range d.Catalog.Issues {
				a.log.Warn("table %s incomplete (%s): %v", issue.Table, issue.Stage, issue.Err)
			}

			var writer io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() {
					if err := f.Close(); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to close output file: %v\n", err)
					}
				}()
				writer = f
			}

			if err := birdmap.FormatDatabases(writer, format, d); err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatter.FormatText, "Output format: text or markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
