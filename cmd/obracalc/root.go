package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/app"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/config"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/logging"
)

// App is opened by the root command's PersistentPreRunE and closed and reset
// to nil in PersistentPostRunE, so subcommands can use it only while they run.
var App *app.App

var (
	noColor bool
	verbose bool
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:          "obracalc",
	Short:        "Construction materials calculator and budget history",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		if App != nil {
			return nil
		}

		cfg := config.Load()
		if dbPath != "" {
			cfg.DBPath = dbPath
		}

		logger, err := logging.New(cfg.LogMode)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		if !verbose {
			logger = logger.Quiet()
		}

		a, err := app.Open(cfg, logger)
		if err != nil {
			return err
		}
		App = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if App == nil {
			return nil
		}
		App.Log.Sync()
		err := App.Close()
		App = nil
		return err
	},
}

//nolint:gochecknoinits
func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at the configured level instead of warnings only")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the sqlite database (overrides DB_PATH)")
}

// warnIfNotPersisted tells the user a change only lives in memory.
func warnIfNotPersisted(cmd *cobra.Command, ok bool) {
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("Warning:"), "the change could not be written to disk")
	}
}
