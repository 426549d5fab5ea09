package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/history"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

var (
	historyQuery string
	deleteAllYes bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist"},
	Short:   "Manage saved budgets",
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved budgets, most recently changed first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderHistory(cmd.OutOrStdout(), App.History.Search(historyQuery), App.Settings.Get())
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the saved budgets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := App.History.Stats()
		code := App.Settings.Get().Currency

		t := newTable("", "")
		t.Row("Budgets", strconv.Itoa(st.Count))
		t.Row("Total value", pricing.FormatCurrency(st.TotalValue, code))
		t.Row("Items", strconv.Itoa(st.TotalItems))
		t.Row("Average value", pricing.FormatCurrency(st.AverageValue, code))
		if st.Oldest != nil {
			t.Row("Oldest", st.Oldest.Local().Format(dateLayout))
			t.Row("Newest", st.Newest.Local().Format(dateLayout))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved budget",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := App.History.Load(args[0])
		if err != nil {
			return err
		}
		renderSavedBudget(cmd.OutOrStdout(), entry, App.Settings.Get())
		return nil
	},
}

var historyRenameCmd = &cobra.Command{
	Use:   "rename <id> <name...>",
	Short: "Rename a saved budget",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args[1:], " ")
		if err := App.History.Rename(args[0], name); err != nil {
			return err
		}
		warnIfNotPersisted(cmd, App.History.LastSaveSucceeded())
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], color.CyanString(name))
		return nil
	},
}

var historyDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Save a copy of a budget under a new id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dup, err := App.History.Duplicate(args[0])
		if err != nil {
			return err
		}
		warnIfNotPersisted(cmd, App.History.LastSaveSucceeded())
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", color.CyanString(dup.Name), dup.ID)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved budget",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !App.History.Delete(args[0]) {
			return fmt.Errorf("%w: %s", history.ErrNotFound, args[0])
		}
		warnIfNotPersisted(cmd, App.History.LastSaveSucceeded())
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var historyDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every saved budget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := App.History.Len()
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "History is already empty.")
			return nil
		}
		if !deleteAllYes {
			prompt := promptui.Prompt{
				Label:     fmt.Sprintf("Delete all %d saved budgets", n),
				IsConfirm: true,
			}
			if _, err := prompt.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion aborted.")
					return nil
				}
				return err
			}
		}
		App.History.DeleteAll()
		warnIfNotPersisted(cmd, App.History.LastSaveSucceeded())
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d budgets.\n", n)
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringVarP(&historyQuery, "query", "q", "", "filter by name, item description or item type")
	historyDeleteAllCmd.Flags().BoolVarP(&deleteAllYes, "yes", "y", false, "skip the confirmation prompt")

	historyCmd.AddCommand(historyListCmd, historyStatsCmd, historyShowCmd, historyRenameCmd,
		historyDuplicateCmd, historyDeleteCmd, historyDeleteAllCmd)
	rootCmd.AddCommand(historyCmd)
}
