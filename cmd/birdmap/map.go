package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tordrt/birdmap"
	"github.com/tordrt/birdmap/internal/config"
	"github.com/tordrt/birdmap/internal/formatter"
)

type mapFlags struct {
	output       string
	schemaScript string
	docsDir      string
	docsFormat   string
	recursive    bool
	maxPerDomain int
	prefix       string
	database     string
	schema       string
}

func newMapCmd(a *app) *cobra.Command {
	f := &mapFlags{}

	cmd := &cobra.Command{
		Use:   "map [directory]",
		Short: "Analyze every database in a directory and write the mapping report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, a, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "JSON report file (default: "+config.DefaultOutput+")")
	cmd.Flags().StringVarP(&f.schemaScript, "schema-script", "s", "", "Write the Snowflake schema creation script to this file")
	cmd.Flags().StringVar(&f.docsDir, "docs-dir", "", "Write an overview and one file per database to this directory")
	cmd.Flags().StringVar(&f.docsFormat, "docs-format", formatter.FormatMarkdown, "Docs format: text or markdown")
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "Search subdirectories")
	cmd.Flags().IntVar(&f.maxPerDomain, "max-per-domain", 0, "Databases per domain to include in the schema script (0: all)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Prefix for generated table names")
	cmd.Flags().StringVar(&f.database, "database", "", "Target Snowflake database")
	cmd.Flags().StringVar(&f.schema, "schema", "", "Target Snowflake schema")

	return cmd
}

// applyFlags overrides configuration values with flags given on the command line
func (f *mapFlags) applyFlags(a *app, cmd *cobra.Command, args []string) {
	cfg := a.cfg
	if len(args) == 1 {
		cfg.DataDir = args[0]
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = f.output
	}
	if cmd.Flags().Changed("schema-script") {
		cfg.SchemaScript = f.schemaScript
	}
	if cmd.Flags().Changed("docs-dir") {
		cfg.DocsDir = f.docsDir
	}
	if cmd.Flags().Changed("recursive") {
		cfg.Recursive = f.recursive
	}
	if cmd.Flags().Changed("max-per-domain") {
		cfg.MaxDatabasesPerDomain = f.maxPerDomain
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Warehouse.TablePrefix = f.prefix
	}
	if cmd.Flags().Changed("database") {
		cfg.Warehouse.Database = f.database
	}
	if cmd.Flags().Changed("schema") {
		cfg.Warehouse.Schema = f.schema
	}
}

func runMap(cmd *cobra.Command, a *app, f *mapFlags, args []string) error {
	ctx := context.Background()

	f.applyFlags(a, cmd, args)
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DataDir == "" {
		return errors.New("a database directory must be given as an argument, in the config file or via BIRDMAP_DATA_DIR")
	}

	result, err := birdmap.MapDirectory(ctx, cfg.DataDir, &birdmap.Options{
		Logger:    a.log,
		Recursive: cfg.Recursive,
	})
	if err != nil {
		return err
	}

	m := result.Report()
	if err := m.WriteFile(cfg.Output); err != nil {
		return err
	}
	a.log.Success("Report written to %s", cfg.Output)

	if cfg.SchemaScript != "" {
		ddlErrs, err := result.WriteSchemaScript(cfg.SchemaScript, birdmap.ScriptOptions{
			Database:              cfg.Warehouse.Database,
			Schema:                cfg.Warehouse.Schema,
			TablePrefix:           cfg.Warehouse.TablePrefix,
			MaxDatabasesPerDomain: cfg.MaxDatabasesPerDomain,
		})
		if err != nil {
			return err
		}
		for _, e := range ddlErrs {
			a.log.Warn("%v", e)
		}
		a.log.Success("Schema script written to %s", cfg.SchemaScript)
	}

	if cfg.DocsDir != "" {
		if err := result.WriteDocs(cfg.DocsDir, f.docsFormat); err != nil {
			return fmt.Errorf("failed to write docs: %w", err)
		}
		a.log.Success("Docs written to %s", cfg.DocsDir)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Databases: %d analyzed, %d failed\n", m.Succeeded, m.Failed)
	for _, domain := range result.Tally.Domains() {
		s := m.DomainSummary[domain]
		fmt.Fprintf(out, "  %-16s %3d databases  avg complexity %.1f\n", domain, s.Count, s.AvgComplexity)
	}
	if m.TotalDatabases > 0 {
		c := m.ComplexityAnalysis
		fmt.Fprintf(out, "Complexity: min %.1f, max %.1f, avg %.1f (most complex: %s, least complex: %s)\n",
			c.Min, c.Max, c.Avg, c.MostComplex, c.LeastComplex)
	}

	return nil
}
