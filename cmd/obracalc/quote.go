package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/budget"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
)

var (
	quoteName   string
	quoteUpdate string
	quoteDryRun bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote <category>:key=value,... ...",
	Short: "Build a budget from several estimates and save it to history",
	Example: `  obracalc quote --name "Casa da praia" masonry:length=5,height=2.8 painting:area=40,coats=2
  obracalc quote --update <id> flooring:length=4,width=3,tileSize=45x45`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b := budget.New()
		if quoteUpdate != "" {
			entry, err := App.History.Load(quoteUpdate)
			if err != nil {
				return err
			}
			b.Load(entry)
		}
		if cmd.Flags().Changed("name") {
			b.SetProjectName(quoteName)
		}

		for _, arg := range args {
			category, form, err := parseQuoteArg(arg)
			if err != nil {
				return err
			}
			item, err := App.Estimator.Estimate(category, form)
			if err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}
			b.Add(item)
		}

		s := App.Settings.Get()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.New(color.Bold).Sprint(b.ProjectName()))
		renderItems(out, b.Items(), s)
		fmt.Fprintf(out, "Total: %s\n", color.GreenString(pricing.FormatCurrency(b.Total(), s.Currency)))

		if quoteDryRun {
			return nil
		}
		saved, err := b.Save(App.History)
		if err != nil {
			return err
		}
		warnIfNotPersisted(cmd, App.History.LastSaveSucceeded())
		fmt.Fprintf(out, "Saved as %s (%s)\n", color.CyanString(saved.Name), saved.ID)
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteName, "name", "n", "", "budget name (defaults to today's date)")
	quoteCmd.Flags().StringVar(&quoteUpdate, "update", "", "append to and overwrite the saved budget with this id")
	quoteCmd.Flags().BoolVar(&quoteDryRun, "dry-run", false, "print the budget without saving it")
	rootCmd.AddCommand(quoteCmd)
}
