package main

import (
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderSettings(cmd.OutOrStdout(), App.Settings.Get())
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:     "set key=value...",
	Short:   "Change preferences",
	Example: `  obracalc settings set currency=USD unitSystem=imperial notifications=false`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := parseSettingsPatch(args)
		if err != nil {
			return err
		}
		s := App.Settings.Update(patch)
		warnIfNotPersisted(cmd, App.Settings.LastSaveSucceeded())
		renderSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := App.Settings.Reset()
		warnIfNotPersisted(cmd, App.Settings.LastSaveSucceeded())
		renderSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}
