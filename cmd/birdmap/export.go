package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tordrt/birdmap"
)

const loadScriptName = "load.sql"

func newExportCmd(a *app) *cobra.Command {
	var stage, prefix string

	cmd := &cobra.Command{
		Use:   "export <file> <outdir>",
		Short: "Dump every table as CSV and write the matching Snowflake load script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("stage") {
				stage = a.cfg.Warehouse.Stage
			}
			if !cmd.Flags().Changed("prefix") {
				prefix = a.cfg.Warehouse.TablePrefix
			}

			outDir := args[1]
			steps, errs, err := birdmap.ExportDatabase(context.Background(), args[0], outDir, birdmap.ExportOptions{
				TablePrefix: prefix,
				Stage:       stage,
			})
			if err != nil {
				return err
			}
			for _, e := range errs {
				a.log.Warn("%v", e)
			}

			var b strings.Builder
			for _, s := range steps {
				a.log.Info("%s: %d rows → %s", s.Table, s.Rows, s.File)
				b.WriteString(s.CreateSQL + "\n\n")
				if s.CopySQL != "" {
					b.WriteString(s.CopySQL + "\n\n")
				}
			}
			if stage == "" {
				a.log.Warn("No stage given, %s has no COPY INTO statements", loadScriptName)
			}

			script := filepath.Join(outDir, loadScriptName)
			if err := os.WriteFile(script, []byte(b.String()), 0644); err != nil {
				return fmt.Errorf("failed to write load script: %w", err)
			}
			a.log.Success("Exported %d tables to %s", len(steps), outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Snowflake stage holding the CSV files, e.g. @bird_stage")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for generated table names")

	return cmd
}
