package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tordrt/birdmap/internal/config"
	"github.com/tordrt/birdmap/internal/console"
)

// app carries state shared by all sub-commands
type app struct {
	configPath string
	quiet      bool
	noColor    bool

	cfg *config.Config
	log *console.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "birdmap",
		Short: "Map BIRD SQLite databases to business domains and Snowflake DDL",
		Long: `birdmap inspects SQLite databases from the BIRD benchmark, classifies each one
into a business domain, scores its complexity and generates Snowflake schema scripts
and load files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Only print warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newMapCmd(a),
		newInspectCmd(a),
		newDDLCmd(a),
		newExportCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.noColor {
		color.NoColor = true
	}
	a.log = console.New(cmd.ErrOrStderr(), a.quiet)
	if a.noColor {
		a.log.DisableColor()
	}

	loaded, err := config.LoadEnvFiles()
	if err != nil {
		return err
	}
	if !loaded {
		a.log.Info("No .env file found, continuing...")
	}

	a.cfg, err = config.Load(a.configPath)
	if err != nil {
		return err
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
