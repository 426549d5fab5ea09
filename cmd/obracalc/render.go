package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/history"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/settings"
)

const dateLayout = "02/01/2006 15:04"

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// unitKeys maps display units to the keys pricing.ConvertUnit understands.
var unitKeys = map[string]string{
	"m²": "m2",
	"m³": "m3",
	"m":  "m",
	"kg": "kg",
	"L":  "l",
}

// displayQuantity renders a quantity in the user's unit system.
func displayQuantity(q float64, unit string, s settings.Settings) string {
	key, ok := unitKeys[unit]
	if !ok {
		return formatQuantity(q) + " " + unit
	}
	v, u := pricing.ConvertUnit(q, key, s.UnitSystem)
	if u == key {
		u = unit
	}
	return formatQuantity(v) + " " + u
}

// formatQuantity rounds to 4 decimals and drops trailing zeros.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(math.Round(q*1e4)/1e4, 'f', -1, 64)
}

func renderItem(w io.Writer, item estimate.CalculationItem, s settings.Settings) {
	fmt.Fprintf(w, "%s  %s\n", color.New(color.Bold).Sprint(item.Type), item.Description)
	fmt.Fprintf(w, "Quantity: %s\n", displayQuantity(item.Quantity, item.Unit, s))

	t := newTable("Material", "Qty", "Unit", "Unit price", "Subtotal")
	for _, m := range item.Materials {
		t.Row(
			m.Name,
			formatQuantity(m.Quantity),
			m.Unit,
			pricing.FormatCurrency(m.UnitPrice, s.Currency),
			pricing.FormatCurrency(m.Cost(), s.Currency),
		)
	}
	fmt.Fprintln(w, t.String())
	fmt.Fprintf(w, "Total: %s\n", color.GreenString(pricing.FormatCurrency(item.Total, s.Currency)))
}

func renderItems(w io.Writer, items []estimate.CalculationItem, s settings.Settings) {
	t := newTable("Type", "Description", "Quantity", "Total")
	for _, item := range items {
		t.Row(item.Type, item.Description, displayQuantity(item.Quantity, item.Unit, s), pricing.FormatCurrency(item.Total, s.Currency))
	}
	fmt.Fprintln(w, t.String())
}

func renderHistory(w io.Writer, list []history.SavedBudget, s settings.Settings) {
	if len(list) == 0 {
		fmt.Fprintln(w, color.HiBlackString("No saved budgets."))
		return
	}
	t := newTable("ID", "Name", "Items", "Total", "Updated")
	for _, b := range list {
		t.Row(b.ID, b.Name, strconv.Itoa(b.ItemCount), pricing.FormatCurrency(b.TotalBudget, s.Currency), b.UpdatedAt.Local().Format(dateLayout))
	}
	fmt.Fprintln(w, t.String())
}

func renderSavedBudget(w io.Writer, b history.SavedBudget, s settings.Settings) {
	fmt.Fprintf(w, "%s  (%s)\n", color.New(color.Bold).Sprint(b.Name), b.ID)
	fmt.Fprintf(w, "Created: %s  Updated: %s\n", b.CreatedAt.Local().Format(dateLayout), b.UpdatedAt.Local().Format(dateLayout))
	renderItems(w, b.Items, s)
	fmt.Fprintf(w, "Total: %s\n", color.GreenString(pricing.FormatCurrency(b.TotalBudget, s.Currency)))
}

func renderSettings(w io.Writer, s settings.Settings) {
	t := newTable("Key", "Value")
	t.Row("currency", s.Currency)
	t.Row("unitSystem", s.UnitSystem)
	t.Row("notifications", strconv.FormatBool(s.Notifications))
	t.Row("darkMode", strconv.FormatBool(s.DarkMode))
	t.Row("autoSave", strconv.FormatBool(s.AutoSave))
	fmt.Fprintln(w, t.String())
}
