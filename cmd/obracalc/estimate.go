package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
)

func categorySlugs() string {
	var slugs []string
	for _, c := range estimate.Categories() {
		slugs = append(slugs, string(c))
	}
	return strings.Join(slugs, ", ")
}

var estimateCmd = &cobra.Command{
	Use:   "estimate <category> key=value...",
	Short: "Estimate materials for one category",
	Long: `Estimate materials for one category without saving anything.

Categories: ` + categorySlugs() + `
Fields: length, width, height, thickness, area, coats, type, tileSize,
tilePrice, description, laborCost.`,
	Example: `  obracalc estimate masonry length=5 height=2.8 type=ceramic
  obracalc estimate concrete length=4 width=3 thickness=0,10 laborCost=800`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := estimate.ParseCategory(args[0])
		if err != nil {
			return err
		}
		form, err := parseFields(args[1:])
		if err != nil {
			return err
		}
		item, err := App.Estimator.Estimate(category, form)
		if err != nil {
			return fmt.Errorf("%s: %w", category.Label(), err)
		}
		renderItem(cmd.OutOrStdout(), item, App.Settings.Get())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}
