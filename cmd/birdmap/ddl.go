package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tordrt/birdmap"
)

func newDDLCmd(a *app) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "ddl <file>",
		Short: "Print Snowflake CREATE TABLE statements for a single database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("prefix") {
				prefix = a.cfg.Warehouse.TablePrefix
			}

			d, err := birdmap.AnalyzeFile(context.Background(), args[0], nil)
			if err != nil {
				return err
			}

			stmts, errs := birdmap.CreateTables(d, prefix)
			for _, e := range errs {
				a.log.Warn("%v", e)
			}

			out := cmd.OutOrStdout()
			for i, s := range stmts {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, s.SQL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for generated table names")

	return cmd
}
